// Package docs registers the Swagger 2.0 document of the wallet API with
// swag, served by gofiber/swagger under /swagger. It is maintained by hand
// alongside the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "description": "Verify username and password and issue a one-time code",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Begin login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.LoginInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/auth/otp": {
            "post": {
                "description": "Exchange a one-time code for a session token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Complete login",
                "parameters": [
                    {
                        "description": "One-time code",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.OTPInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Revoke the current bearer token",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/user": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "Retrieve the identity of the authenticated user",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            },
            "post": {
                "description": "Create an identity with username, email, and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "User creation data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/user.NewUser"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "description": "Update the email of the authenticated user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "description": "Delete the authenticated user's identity",
                "tags": ["users"],
                "summary": "Delete user",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/wallet": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "Retrieve the wallet referenced by the authenticated user",
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "Get own wallet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "description": "Create the single wallet of the authenticated user with a zero balance",
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "Create wallet",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/wallet/{id}/transactions": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "List the transactions of a wallet in the order they were applied",
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "description": "Wallet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "description": "Credit or debit a wallet by a positive amount",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "Apply transaction",
                "parameters": [
                    {"type": "string", "description": "Wallet ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Transaction",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/wallet.TransactionInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/wallet/{id}/transfer": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Debit the source wallet and credit the destination wallet",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "Transfer funds",
                "parameters": [
                    {"type": "string", "description": "Source wallet ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Transfer",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/wallet.TransferInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/admin/users": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "List every identity ordered by username",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "auth.LoginInput": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "auth.OTPInput": {
            "type": "object",
            "required": ["otp", "username"],
            "properties": {
                "otp": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "user.NewUser": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "wallet.TransactionInput": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "amount": {"type": "string", "example": "10.50"},
                "description": {"type": "string"},
                "type": {"type": "string", "example": "credit"}
            }
        },
        "wallet.TransferInput": {
            "type": "object",
            "required": ["to_wallet_id"],
            "properties": {
                "amount": {"type": "string", "example": "10.50"},
                "description": {"type": "string"},
                "to_wallet_id": {"type": "string"}
            }
        },
        "common.ProblemDetails": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "errors": {},
                "instance": {"type": "string"},
                "status": {"type": "integer"},
                "title": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "common.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Enter your Bearer token in the format: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Wallet API",
	Description:      "Wallet identity and ledger API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
