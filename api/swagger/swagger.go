package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SRMS Gateway",
        "description": "Role-based command gateway for the student records stored-procedure database",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Session lifecycle"},
        {"name": "Operations", "description": "Role-gated commands against the remote store"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Open a session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session opened", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing username or password", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Remote store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Close the current session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Session closed"},
                    "401": {"description": "No live session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Describe the current session",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Principal and permitted operations", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "No live session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/operations": {
            "get": {
                "tags": ["Operations"],
                "summary": "List permitted operations",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Operations for the current role", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "No live session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/operations/{name}": {
            "post": {
                "tags": ["Operations"],
                "summary": "Invoke an operation",
                "description": "Arguments are a flat object of form fields. Row results can be exported with format=csv or format=pdf.",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json", "text/csv", "application/pdf"],
                "parameters": [
                    {
                        "in": "path", "name": "name", "required": true, "type": "string",
                        "enum": [
                            "viewPublicCourses", "viewOwnProfile", "viewOwnAttendance", "submitRoleRequest",
                            "viewAssignedProfiles", "recordAttendance", "viewAttendance", "viewProfiles",
                            "enterOrUpdateGrade", "viewGrades", "createUser", "updateUserRole",
                            "listPendingRoleRequests", "approveRoleRequest", "denyRoleRequest", "runDepartmentAggregate"
                        ]
                    },
                    {"in": "query", "name": "format", "type": "string", "enum": ["json", "csv", "pdf"]},
                    {"in": "body", "name": "payload", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                ],
                "responses": {
                    "200": {"description": "Operation result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "VALIDATION_ERROR or INVALID_ROLE_FOR_APPROVAL", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "No live session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "ROLE_NOT_PERMITTED", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Role request not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "406": {"description": "Export format unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "REQUEST_ALREADY_RESOLVED", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "REMOTE_ERROR", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "REMOTE_UNAVAILABLE", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string", "format": "password"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
