// Package docs holds the OpenAPI description served at /swagger. Regenerate with
// swag init -g cmd/server/main.go -o docs after changing handler annotations.
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
        "/entities": {
            "get": {
                "tags": [
                    "entities"
                ],
                "summary": "List entities",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Offset for pagination",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Limit for pagination (max 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ]
            },
            "post": {
                "tags": [
                    "entities"
                ],
                "summary": "Create a entity",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateEntityRequest"
                        }
                    }
                ]
            }
        },
        "/entities/{id}": {
            "get": {
                "tags": [
                    "entities"
                ],
                "summary": "Get entity by ID",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entity ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "put": {
                "tags": [
                    "entities"
                ],
                "summary": "Update a entity",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entity ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateEntityRequest"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "entities"
                ],
                "summary": "Delete a entity",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entity ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/clients": {
            "get": {
                "tags": [
                    "clients"
                ],
                "summary": "List clients",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Offset for pagination",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Limit for pagination (max 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ]
            },
            "post": {
                "tags": [
                    "clients"
                ],
                "summary": "Create a client",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateClientRequest"
                        }
                    }
                ]
            }
        },
        "/clients/{id}": {
            "get": {
                "tags": [
                    "clients"
                ],
                "summary": "Get client by ID",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Client ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "put": {
                "tags": [
                    "clients"
                ],
                "summary": "Update a client",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Client ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateClientRequest"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "clients"
                ],
                "summary": "Delete a client",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Client ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/values": {
            "get": {
                "tags": [
                    "values"
                ],
                "summary": "List values",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Only values of this client (UUID)",
                        "name": "client_id",
                        "in": "query"
                    }
                ]
            },
            "post": {
                "tags": [
                    "values"
                ],
                "summary": "Set a value",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.SetValueRequest"
                        }
                    }
                ]
            }
        },
        "/values/{id}": {
            "put": {
                "tags": [
                    "values"
                ],
                "summary": "Update a value",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Value ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateValueRequest"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "values"
                ],
                "summary": "Delete a value",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Value ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/values/import": {
            "post": {
                "tags": [
                    "values"
                ],
                "summary": "Import values from a spreadsheet",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "consumes": [
                    "multipart/form-data"
                ],
                "parameters": [
                    {
                        "type": "file",
                        "description": "XLSX workbook",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ]
            }
        },
        "/templates": {
            "get": {
                "tags": [
                    "templates"
                ],
                "summary": "List templates",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Offset for pagination",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Limit for pagination (max 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ]
            }
        },
        "/templates/upload": {
            "post": {
                "tags": [
                    "templates"
                ],
                "summary": "Upload a template",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "consumes": [
                    "multipart/form-data"
                ],
                "parameters": [
                    {
                        "type": "file",
                        "description": "DOCX template",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Display name",
                        "name": "name",
                        "in": "formData"
                    }
                ]
            }
        },
        "/templates/{id}": {
            "get": {
                "tags": [
                    "templates"
                ],
                "summary": "Get template by ID",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Template ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "templates"
                ],
                "summary": "Delete a template",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Template ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/templates/{id}/placeholders": {
            "get": {
                "tags": [
                    "templates"
                ],
                "summary": "List template placeholders",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Template ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/generate": {
            "post": {
                "tags": [
                    "generate"
                ],
                "summary": "Generate documents",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
                    "application/zip"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.GenerateRequest"
                        }
                    }
                ]
            }
        },
        "/history": {
            "get": {
                "tags": [
                    "history"
                ],
                "summary": "List generation history",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Filter by client (UUID)",
                        "name": "client_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by template (UUID)",
                        "name": "template_id",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Offset for pagination",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Limit for pagination (max 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ]
            }
        },
        "/history/{id}": {
            "get": {
                "tags": [
                    "history"
                ],
                "summary": "Get a history entry with its download link",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "History ID (UUID)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/history/export": {
            "get": {
                "tags": [
                    "history"
                ],
                "summary": "Export generation history",
                "produces": [
                    "text/csv",
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "csv or xlsx",
                        "name": "format",
                        "in": "query",
                        "enum": [
                            "csv",
                            "xlsx"
                        ],
                        "default": "csv"
                    },
                    {
                        "type": "string",
                        "description": "Filter by client (UUID)",
                        "name": "client_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by template (UUID)",
                        "name": "template_id",
                        "in": "query"
                    }
                ]
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                }
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean",
                    "example": true
                },
                "data": {},
                "meta": {
                    "$ref": "#/definitions/handler.PagMeta"
                }
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean",
                    "example": false
                },
                "error": {
                    "$ref": "#/definitions/handler.APIError"
                }
            }
        },
        "handler.CreateEntityRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string",
                    "example": "Full name"
                },
                "code": {
                    "type": "string",
                    "example": "{FIO}"
                }
            },
            "required": [
                "name",
                "code"
            ]
        },
        "handler.UpdateEntityRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                }
            }
        },
        "handler.CreateClientRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string",
                    "example": "Ivan Petrov"
                }
            },
            "required": [
                "name"
            ]
        },
        "handler.UpdateClientRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                }
            }
        },
        "handler.SetValueRequest": {
            "type": "object",
            "properties": {
                "entity_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "client_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "value_text": {
                    "type": "string"
                }
            },
            "required": [
                "entity_id",
                "client_id"
            ]
        },
        "handler.UpdateValueRequest": {
            "type": "object",
            "properties": {
                "value_text": {
                    "type": "string"
                }
            }
        },
        "handler.GenerateRequest": {
            "type": "object",
            "properties": {
                "template_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "client_ids": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    }
                },
                "user_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "notify_email": {
                    "type": "string"
                }
            },
            "required": [
                "template_id",
                "client_ids"
            ]
        },
        "domain.Entity": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "name": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "domain.Client": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "name": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "domain.Value": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "entity_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "client_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "value_text": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "domain.Template": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "name": {
                    "type": "string"
                },
                "filename": {
                    "type": "string"
                },
                "storage_key": {
                    "type": "string"
                },
                "file_size": {
                    "type": "integer"
                },
                "uploaded_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "domain.GenerationHistory": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "user_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "client_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "template_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "output_filename": {
                    "type": "string"
                },
                "storage_key": {
                    "type": "string"
                },
                "generated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "DocGen API",
	Description:      "Placeholder entities, clients, values and DOCX templates merged into generated documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
