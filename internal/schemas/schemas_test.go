package schemas

import (
	"errors"
	"strings"
	"testing"

	"github.com/chem1sto/test-moscow-metro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fields(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	out := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func TestDecodeUserCreate(t *testing.T) {
	var in UserCreate
	err := Decode(strings.NewReader(`{
		"id": 42,
		"first_name": "Ivan",
		"second_name": "Ivanov",
		"patronymic": "Ivanovich",
		"email": " ivan@example.ru ",
		"address": "Pushkina st. 10"
	}`), &in)
	require.NoError(t, err)

	user := in.User()
	assert.Zero(t, user.ID)
	assert.Equal(t, "Ivan", user.FirstName)
	assert.Equal(t, "ivan@example.ru", user.Email)
	assert.Equal(t, "Ivanovich", *user.Patronymic)
	assert.Nil(t, user.PhotoURL)
}

func TestDecodeUserCreateRejectsMissingAndInvalid(t *testing.T) {
	var in UserCreate
	err := Decode(strings.NewReader(`{"email": "invalid-email"}`), &in)

	assert.ElementsMatch(t, []string{"first_name", "second_name", "email"}, fields(t, err))
}

func TestDecodeMalformedBodies(t *testing.T) {
	cases := map[string]string{
		"empty":      ``,
		"syntax":     `{"first_name": `,
		"wrong type": `{"first_name": 5}`,
		"not object": `[1, 2]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var in UserCreate
			err := Decode(strings.NewReader(body), &in)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "got %v", err)
		})
	}
}

func TestUserUpdateApplyOverwritesEverything(t *testing.T) {
	user := &models.User{
		ID:         7,
		FirstName:  "Ivan",
		SecondName: "Ivanov",
		Patronymic: strPtr("Ivanovich"),
		Email:      "ivan@example.ru",
		Address:    strPtr("Pushkina st. 10"),
		PhotoURL:   strPtr("http://127.0.0.1:8000/static/photo_user_7.jpg"),
	}
	var in UserUpdate
	require.NoError(t, Decode(strings.NewReader(`{
		"first_name": "Vasiliy",
		"second_name": "Vasiliev",
		"email": "vasiliy@example.ru"
	}`), &in))

	in.Apply(user)

	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "Vasiliy", user.FirstName)
	assert.Equal(t, "Vasiliev", user.SecondName)
	assert.Equal(t, "vasiliy@example.ru", user.Email)
	assert.Nil(t, user.Patronymic)
	assert.Nil(t, user.Address)
	assert.Nil(t, user.PhotoURL)
}

func TestUserPatchAppliesOnlyPresentFields(t *testing.T) {
	user := &models.User{
		FirstName:  "Ivan",
		SecondName: "Ivanov",
		Patronymic: strPtr("Ivanovich"),
		Email:      "ivan@example.ru",
		Address:    strPtr("Pushkina st. 10"),
	}
	var in UserPatch
	require.NoError(t, Decode(strings.NewReader(`{"first_name": "Dmitriy", "address": null}`), &in))

	in.Apply(user)

	assert.Equal(t, "Dmitriy", user.FirstName)
	assert.Equal(t, "Ivanov", user.SecondName)
	assert.Equal(t, "Ivanovich", *user.Patronymic)
	assert.Equal(t, "ivan@example.ru", user.Email)
	assert.Nil(t, user.Address)
}

func TestUserPatchValidation(t *testing.T) {
	var in UserPatch
	err := Decode(strings.NewReader(`{"first_name": null, "second_name": "", "email": "nope"}`), &in)

	assert.ElementsMatch(t, []string{"first_name", "second_name", "email"}, fields(t, err))
}

func TestPostCreateRequiresUserID(t *testing.T) {
	var missing PostCreate
	assert.Equal(t, []string{"user_id"}, fields(t, Decode(strings.NewReader(`{"title": "Hello"}`), &missing)))

	var wrongType PostCreate
	assert.Equal(t, []string{"user_id"}, fields(t, Decode(strings.NewReader(`{"user_id": "one"}`), &wrongType)))

	var emptyTitle PostCreate
	assert.Equal(t, []string{"title"}, fields(t, Decode(strings.NewReader(`{"user_id": 1, "title": ""}`), &emptyTitle)))
}

func TestPostPatch(t *testing.T) {
	post := &models.Post{ID: 3, UserID: 1, Title: strPtr("Title"), Content: strPtr("Content")}

	var in PostPatch
	require.NoError(t, Decode(strings.NewReader(`{"content": "Best of the best"}`), &in))
	in.Apply(post)

	assert.Equal(t, uint(1), post.UserID)
	assert.Equal(t, "Title", *post.Title)
	assert.Equal(t, "Best of the best", *post.Content)

	var bad PostPatch
	err := Decode(strings.NewReader(`{"user_id": null, "title": ""}`), &bad)
	assert.ElementsMatch(t, []string{"user_id", "title"}, fields(t, err))
}

func TestOptional(t *testing.T) {
	var absent Optional[string]
	assert.False(t, absent.Set)

	null := Null[string]()
	assert.True(t, null.Set)
	assert.Nil(t, null.Ptr())

	some := Some("x")
	require.NotNil(t, some.Ptr())
	assert.Equal(t, "x", *some.Ptr())
}

func TestPatchColumns(t *testing.T) {
	var user UserPatch
	require.NoError(t, Decode(strings.NewReader(`{"first_name": "Dmitriy", "address": null}`), &user))
	assert.Equal(t, []string{"first_name", "address"}, user.Columns())

	var empty UserPatch
	require.NoError(t, Decode(strings.NewReader(`{}`), &empty))
	assert.Empty(t, empty.Columns())

	var post PostPatch
	require.NoError(t, Decode(strings.NewReader(`{"content": null, "user_id": 2}`), &post))
	assert.Equal(t, []string{"user_id", "content"}, post.Columns())
}
