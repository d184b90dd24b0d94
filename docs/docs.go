// Package docs holds the OpenAPI document served under /swagger/.
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
		"/healthz": {
			"get": {
				"tags": [
					"system"
				],
				"summary": "Database health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/user/register": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Register an alumnus",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/RegisterRequest"
						}
					}
				]
			}
		},
		"/user/login": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Log in as an alumnus",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/LoginRequest"
						}
					}
				]
			}
		},
		"/admin/login": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Log in as an admin",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/LoginRequest"
						}
					}
				]
			}
		},
		"/admin/register": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Create an admin and email a one-time password",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"parameters": [
					{
						"in": "header",
						"name": "X-Admin-Secret",
						"type": "string",
						"required": true
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/CreateAdminRequest"
						}
					}
				]
			}
		},
		"/forgot-password": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Request a password reset email",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ForgotPasswordRequest"
						}
					}
				]
			}
		},
		"/reset-password": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Reset a password with an emailed token",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ResetPasswordRequest"
						}
					}
				]
			}
		},
		"/user/dashboard": {
			"get": {
				"tags": [
					"accounts"
				],
				"summary": "Current alumnus profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/user/update": {
			"put": {
				"tags": [
					"accounts"
				],
				"summary": "Change password",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ChangePasswordRequest"
						}
					}
				]
			}
		},
		"/user/profile": {
			"put": {
				"tags": [
					"accounts"
				],
				"summary": "Update profile fields",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ProfileUpdate"
						}
					}
				]
			}
		},
		"/user/delete": {
			"delete": {
				"tags": [
					"accounts"
				],
				"summary": "Delete own account and posts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/user/search": {
			"get": {
				"tags": [
					"accounts"
				],
				"summary": "Search alumni by name",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "query",
						"name": "q",
						"type": "string"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					}
				]
			}
		},
		"/create/post": {
			"post": {
				"tags": [
					"posts"
				],
				"summary": "Create a post, optionally with one media file",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/NewPost"
						}
					}
				],
				"consumes": [
					"application/json",
					"multipart/form-data"
				]
			}
		},
		"/view/post": {
			"get": {
				"tags": [
					"posts"
				],
				"summary": "Own posts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "query",
						"name": "limit",
						"type": "integer",
						"description": "1..100, default 50"
					},
					{
						"in": "query",
						"name": "before",
						"type": "integer",
						"description": "cursor: return posts older than this id"
					}
				]
			}
		},
		"/view/others": {
			"get": {
				"tags": [
					"posts"
				],
				"summary": "Posts by other alumni",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "query",
						"name": "limit",
						"type": "integer",
						"description": "1..100, default 50"
					},
					{
						"in": "query",
						"name": "before",
						"type": "integer",
						"description": "cursor: return posts older than this id"
					}
				]
			}
		},
		"/view/all": {
			"get": {
				"tags": [
					"posts"
				],
				"summary": "All posts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "query",
						"name": "limit",
						"type": "integer",
						"description": "1..100, default 50"
					},
					{
						"in": "query",
						"name": "before",
						"type": "integer",
						"description": "cursor: return posts older than this id"
					}
				]
			}
		},
		"/view/saved": {
			"get": {
				"tags": [
					"posts"
				],
				"summary": "Saved posts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "query",
						"name": "limit",
						"type": "integer",
						"description": "1..100, default 50"
					},
					{
						"in": "query",
						"name": "before",
						"type": "integer",
						"description": "cursor: return posts older than this id"
					}
				]
			}
		},
		"/view/type/{type}": {
			"get": {
				"tags": [
					"posts"
				],
				"summary": "Posts of one type",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "type",
						"type": "string",
						"enum": [
							"regular",
							"job",
							"event",
							"donation"
						],
						"required": true
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer",
						"description": "1..100, default 50"
					},
					{
						"in": "query",
						"name": "before",
						"type": "integer",
						"description": "cursor: return posts older than this id"
					}
				]
			}
		},
		"/view/post/{id}": {
			"get": {
				"tags": [
					"posts"
				],
				"summary": "One post with comments",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					}
				]
			}
		},
		"/edit/post/{id}": {
			"put": {
				"tags": [
					"posts"
				],
				"summary": "Edit post content",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/EditPost"
						}
					}
				]
			}
		},
		"/delete/post/{id}": {
			"delete": {
				"tags": [
					"posts"
				],
				"summary": "Delete own post",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					}
				]
			}
		},
		"/like/{id}": {
			"post": {
				"tags": [
					"posts"
				],
				"summary": "Toggle like",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					}
				]
			}
		},
		"/save/{id}": {
			"post": {
				"tags": [
					"posts"
				],
				"summary": "Toggle save",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					}
				]
			}
		},
		"/comment/{id}": {
			"post": {
				"tags": [
					"posts"
				],
				"summary": "Comment on a post",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/NewComment"
						}
					}
				]
			}
		},
		"/comment/{id}/{commentId}": {
			"delete": {
				"tags": [
					"posts"
				],
				"summary": "Delete a comment",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					},
					{
						"in": "path",
						"name": "commentId",
						"type": "integer",
						"required": true
					}
				]
			}
		},
		"/notifications": {
			"get": {
				"tags": [
					"notifications"
				],
				"summary": "List notifications",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/notifications/read": {
			"put": {
				"tags": [
					"notifications"
				],
				"summary": "Mark all read",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/notifications/{id}/read": {
			"put": {
				"tags": [
					"notifications"
				],
				"summary": "Mark one read",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					}
				]
			}
		},
		"/notifications/{id}": {
			"delete": {
				"tags": [
					"notifications"
				],
				"summary": "Delete a notification",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					}
				]
			}
		},
		"/admin/dashboard": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "Current admin profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/admin/update": {
			"put": {
				"tags": [
					"admin"
				],
				"summary": "Change admin password",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ChangePasswordRequest"
						}
					}
				]
			}
		},
		"/admin/users": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "List alumni",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "offset",
						"type": "integer"
					}
				]
			}
		},
		"/admin/users/{id}": {
			"delete": {
				"tags": [
					"admin"
				],
				"summary": "Delete an alumnus and their posts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					}
				]
			}
		},
		"/admin/stats": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "Site statistics",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/admin/{kind}": {
			"post": {
				"tags": [
					"admin"
				],
				"summary": "Publish site content",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "kind",
						"type": "string",
						"enum": [
							"announcements",
							"events",
							"jobs",
							"stories"
						],
						"required": true
					}
				]
			}
		},
		"/admin/{kind}/{id}": {
			"delete": {
				"tags": [
					"admin"
				],
				"summary": "Delete site content",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "kind",
						"type": "string",
						"enum": [
							"announcements",
							"events",
							"jobs",
							"stories"
						],
						"required": true
					},
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					}
				]
			}
		},
		"/content/{kind}": {
			"get": {
				"tags": [
					"content"
				],
				"summary": "List site content",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "kind",
						"type": "string",
						"enum": [
							"announcements",
							"events",
							"jobs",
							"stories"
						],
						"required": true
					}
				]
			}
		},
		"/content/{kind}/{id}": {
			"get": {
				"tags": [
					"content"
				],
				"summary": "One content item",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "kind",
						"type": "string",
						"enum": [
							"announcements",
							"events",
							"jobs",
							"stories"
						],
						"required": true
					},
					{
						"in": "path",
						"name": "id",
						"type": "integer",
						"required": true
					}
				]
			}
		},
		"/socket": {
			"get": {
				"tags": [
					"realtime"
				],
				"summary": "Websocket for post and notification events",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"parameters": [
					{
						"in": "query",
						"name": "token",
						"type": "string",
						"required": true
					}
				]
			}
		}
	},
	"definitions": {
		"Error": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		},
		"RegisterRequest": {
			"type": "object",
			"properties": {
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"confirmPassword": {
					"type": "string"
				},
				"graduationYear": {
					"type": "integer"
				},
				"course": {
					"type": "string"
				}
			},
			"required": [
				"firstName",
				"email",
				"password",
				"confirmPassword"
			]
		},
		"LoginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"CreateAdminRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"firstName"
			]
		},
		"ForgotPasswordRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"role": {
					"type": "string"
				}
			},
			"required": [
				"email"
			]
		},
		"ResetPasswordRequest": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"token",
				"password"
			]
		},
		"ChangePasswordRequest": {
			"type": "object",
			"properties": {
				"oldPassword": {
					"type": "string"
				},
				"newPassword": {
					"type": "string"
				},
				"confirmPassword": {
					"type": "string"
				}
			},
			"required": [
				"oldPassword",
				"newPassword",
				"confirmPassword"
			]
		},
		"ProfileUpdate": {
			"type": "object",
			"properties": {
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				},
				"graduationYear": {
					"type": "integer"
				},
				"course": {
					"type": "string"
				},
				"bio": {
					"type": "string"
				}
			}
		},
		"NewPost": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				},
				"postType": {
					"type": "string"
				},
				"jobDetails": {
					"type": "object"
				},
				"eventDetails": {
					"type": "object"
				},
				"donationDetails": {
					"type": "object"
				}
			},
			"required": [
				"content"
			]
		},
		"EditPost": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				}
			},
			"required": [
				"content"
			]
		},
		"NewComment": {
			"type": "object",
			"properties": {
				"text": {
					"type": "string"
				}
			},
			"required": [
				"text"
			]
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header",
			"description": "Bearer <session token>"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AlumniConnect API",
	Description:      "Alumni network: accounts, posts, comments, notifications and site content.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
