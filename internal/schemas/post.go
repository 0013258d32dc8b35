package schemas

import (
	"github.com/chem1sto/test-moscow-metro/internal/models"
)

const (
	titleRules   = "min=1,max=255"
	contentRules = "min=1"
)

// PostCreate is the body of POST /posts/.
type PostCreate struct {
	UserID  uint    `json:"user_id" validate:"required"`
	Title   *string `json:"title" validate:"omitnil,min=1,max=255"`
	Content *string `json:"content" validate:"omitnil,min=1"`
}

func (in *PostCreate) Validate() error {
	return validateStruct(in)
}

func (in *PostCreate) Post() *models.Post {
	return &models.Post{
		UserID:  in.UserID,
		Title:   in.Title,
		Content: in.Content,
	}
}

// PostUpdate is the body of PUT /posts/{id}/.
type PostUpdate struct {
	UserID  uint    `json:"user_id" validate:"required"`
	Title   *string `json:"title" validate:"omitnil,min=1,max=255"`
	Content *string `json:"content" validate:"omitnil,min=1"`
}

func (in *PostUpdate) Validate() error {
	return validateStruct(in)
}

func (in *PostUpdate) Apply(p *models.Post) {
	p.UserID = in.UserID
	p.Title = in.Title
	p.Content = in.Content
}

// PostPatch is the body of PATCH /posts/{id}/.
type PostPatch struct {
	UserID  Optional[uint]   `json:"user_id"`
	Title   Optional[string] `json:"title"`
	Content Optional[string] `json:"content"`
}

func (in *PostPatch) Validate() error {
	var c collector
	if in.UserID.Set && (in.UserID.Null || in.UserID.Value == 0) {
		c.add("user_id", "must be a positive integer")
	}
	c.text("title", in.Title, true, titleRules)
	c.text("content", in.Content, true, contentRules)
	return c.err()
}

// Columns lists the posts columns the patch writes.
func (in *PostPatch) Columns() []string {
	var cols []string
	if in.UserID.Set {
		cols = append(cols, "user_id")
	}
	if in.Title.Set {
		cols = append(cols, "title")
	}
	if in.Content.Set {
		cols = append(cols, "content")
	}
	return cols
}

func (in *PostPatch) Apply(p *models.Post) {
	if in.UserID.Set {
		p.UserID = in.UserID.Value
	}
	if in.Title.Set {
		p.Title = in.Title.Ptr()
	}
	if in.Content.Set {
		p.Content = in.Content.Ptr()
	}
}
