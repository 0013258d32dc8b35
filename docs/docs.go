// Package docs holds the OpenAPI document served at /docs/. It mirrors the
// swag annotations on the handlers; regenerate it with `go generate ./cmd/server`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/posts/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "List posts",
                "parameters": [
                    {"minimum": 0, "type": "integer", "default": 0, "description": "Rows to skip", "name": "offset", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 100, "description": "Rows to return", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Only posts of this user", "name": "user_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Post"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Create a post for an existing user",
                "parameters": [
                    {"description": "New post", "name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schemas.PostCreate"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Post"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/posts/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Get a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Post"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Replace every field of a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Full post", "name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schemas.PostUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Post"}},
                    "404": {"description": "Post or user not found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            },
            "delete": {
                "tags": ["Posts"],
                "summary": "Delete a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Change some fields of a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schemas.PostPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Post"}},
                    "404": {"description": "Post or user not found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/users/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List users",
                "parameters": [
                    {"minimum": 0, "type": "integer", "default": 0, "description": "Rows to skip", "name": "offset", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 100, "description": "Rows to return", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.User"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Create a user",
                "parameters": [
                    {"description": "New user", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schemas.UserCreate"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Email already in use", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/users/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Replace every field of a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "Full user", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schemas.UserUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Email already in use", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete a user together with their posts and photo",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Change some fields of a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schemas.UserPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Email already in use", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/users/{id}/posts/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List the posts of one user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"minimum": 0, "type": "integer", "default": 0, "description": "Rows to skip", "name": "offset", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 100, "description": "Rows to return", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Post"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/users_photo/{id}/": {
            "post": {
                "description": "Stores the image as photo_user_<id><ext>, replacing the previous photo, and saves its public URL on the user.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Upload a user's photo",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "JPEG, PNG, GIF or WEBP image", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Not an allowed image type", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "models.Post": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "id": {"type": "integer"},
                "patronymic": {"type": "string"},
                "photo_url": {"type": "string"},
                "second_name": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "schemas.PostCreate": {
            "type": "object",
            "required": ["user_id"],
            "properties": {
                "content": {"type": "string", "minLength": 1},
                "title": {"type": "string", "maxLength": 255, "minLength": 1},
                "user_id": {"type": "integer"}
            }
        },
        "schemas.PostPatch": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "title": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "schemas.PostUpdate": {
            "type": "object",
            "required": ["user_id"],
            "properties": {
                "content": {"type": "string", "minLength": 1},
                "title": {"type": "string", "maxLength": 255, "minLength": 1},
                "user_id": {"type": "integer"}
            }
        },
        "schemas.UserCreate": {
            "type": "object",
            "required": ["email", "first_name", "second_name"],
            "properties": {
                "address": {"type": "string"},
                "email": {"type": "string", "maxLength": 255},
                "first_name": {"type": "string", "maxLength": 255, "minLength": 1},
                "patronymic": {"type": "string", "maxLength": 255},
                "second_name": {"type": "string", "maxLength": 255, "minLength": 1}
            }
        },
        "schemas.UserPatch": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "patronymic": {"type": "string"},
                "second_name": {"type": "string"}
            }
        },
        "schemas.UserUpdate": {
            "type": "object",
            "required": ["email", "first_name", "second_name"],
            "properties": {
                "address": {"type": "string"},
                "email": {"type": "string", "maxLength": 255},
                "first_name": {"type": "string", "maxLength": 255, "minLength": 1},
                "patronymic": {"type": "string", "maxLength": 255},
                "photo_url": {"type": "string"},
                "second_name": {"type": "string", "maxLength": 255, "minLength": 1}
            }
        },
        "utils.ErrorPayload": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "errors": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "test_moscow_metro",
	Description:      "Users, their posts and user photos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
