package schemas

import (
	"strings"

	"github.com/chem1sto/test-moscow-metro/internal/models"
)

const (
	nameRules  = "required,min=1,max=255"
	emailRules = "required,email,max=255"
)

// UserCreate is the body of POST /users/.
type UserCreate struct {
	FirstName  string  `json:"first_name" validate:"required,min=1,max=255"`
	SecondName string  `json:"second_name" validate:"required,min=1,max=255"`
	Patronymic *string `json:"patronymic" validate:"omitnil,max=255"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Address    *string `json:"address"`
}

func (in *UserCreate) Validate() error {
	in.Email = strings.TrimSpace(in.Email)
	return validateStruct(in)
}

// User builds a new, unsaved user. The photo is only ever set by an upload.
func (in *UserCreate) User() *models.User {
	return &models.User{
		FirstName:  in.FirstName,
		SecondName: in.SecondName,
		Patronymic: in.Patronymic,
		Email:      in.Email,
		Address:    in.Address,
	}
}

// UserUpdate is the body of PUT /users/{id}/. Omitted nullable fields become null.
type UserUpdate struct {
	FirstName  string  `json:"first_name" validate:"required,min=1,max=255"`
	SecondName string  `json:"second_name" validate:"required,min=1,max=255"`
	Patronymic *string `json:"patronymic" validate:"omitnil,max=255"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Address    *string `json:"address"`
	PhotoURL   *string `json:"photo_url"`
}

func (in *UserUpdate) Validate() error {
	in.Email = strings.TrimSpace(in.Email)
	return validateStruct(in)
}

// Apply overwrites every mutable field of u.
func (in *UserUpdate) Apply(u *models.User) {
	u.FirstName = in.FirstName
	u.SecondName = in.SecondName
	u.Patronymic = in.Patronymic
	u.Email = in.Email
	u.Address = in.Address
	u.PhotoURL = in.PhotoURL
}

// UserPatch is the body of PATCH /users/{id}/.
type UserPatch struct {
	FirstName  Optional[string] `json:"first_name"`
	SecondName Optional[string] `json:"second_name"`
	Patronymic Optional[string] `json:"patronymic"`
	Email      Optional[string] `json:"email"`
	Address    Optional[string] `json:"address"`
}

func (in *UserPatch) Validate() error {
	if in.Email.Set && !in.Email.Null {
		in.Email.Value = strings.TrimSpace(in.Email.Value)
	}
	var c collector
	c.text("first_name", in.FirstName, false, nameRules)
	c.text("second_name", in.SecondName, false, nameRules)
	c.text("patronymic", in.Patronymic, true, "max=255")
	c.text("email", in.Email, false, emailRules)
	return c.err()
}

// Columns lists the users columns the patch writes.
func (in *UserPatch) Columns() []string {
	var cols []string
	for _, f := range []struct {
		column string
		set    bool
	}{
		{"first_name", in.FirstName.Set},
		{"second_name", in.SecondName.Set},
		{"patronymic", in.Patronymic.Set},
		{"email", in.Email.Set},
		{"address", in.Address.Set},
	} {
		if f.set {
			cols = append(cols, f.column)
		}
	}
	return cols
}

// Apply copies only the fields present in the patch onto u.
func (in *UserPatch) Apply(u *models.User) {
	if in.FirstName.Set {
		u.FirstName = in.FirstName.Value
	}
	if in.SecondName.Set {
		u.SecondName = in.SecondName.Value
	}
	if in.Patronymic.Set {
		u.Patronymic = in.Patronymic.Ptr()
	}
	if in.Email.Set {
		u.Email = in.Email.Value
	}
	if in.Address.Set {
		u.Address = in.Address.Ptr()
	}
}
