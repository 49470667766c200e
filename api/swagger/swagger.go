package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Achievement Management System API",
        "description": "REST backend for recording and reporting student achievements",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Local and federated login, session introspection"},
        {"name": "Registration", "description": "Student and teacher sign-up"},
        {"name": "Achievements", "description": "Achievement recording, dashboards and exports"},
        {"name": "Certificates", "description": "Stored certificate downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check (verifies database connectivity)",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/api/v1/auth/student/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Student login with id and password",
                "parameters": [
                    {"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session issued", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/teacher/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Teacher login with id and password",
                "parameters": [
                    {"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session issued", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/google-login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Federated student login with a Google identity token",
                "description": "Keeps the legacy wire contract: flat success/message body instead of the envelope.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FederatedLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Logged in", "schema": {"$ref": "#/definitions/FederatedLoginResponse"}},
                    "401": {"description": "Token rejected", "schema": {"$ref": "#/definitions/FederatedLoginResponse"}},
                    "404": {"description": "No student account for the email", "schema": {"$ref": "#/definitions/FederatedLoginResponse"}}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Logout (client-side token disposal)",
                "responses": {
                    "200": {"description": "Always succeeds", "schema": {"$ref": "#/definitions/FederatedLoginResponse"}}
                }
            }
        },
        "/api/v1/auth/firebase-config": {
            "get": {
                "tags": ["Auth"],
                "summary": "Public Firebase client configuration",
                "responses": {
                    "200": {"description": "Client blob", "schema": {"$ref": "#/definitions/FirebaseClientConfig"}}
                }
            }
        },
        "/api/v1/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Identity behind the presented session token",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Current identity", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/register/student": {
            "get": {
                "tags": ["Registration"],
                "summary": "Student sign-up form intent",
                "responses": {
                    "200": {"description": "Form fields and Firebase config", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Registration"],
                "summary": "Create a student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Account created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate id or email", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/register/teacher": {
            "get": {
                "tags": ["Registration"],
                "summary": "Teacher sign-up form intent",
                "responses": {
                    "200": {"description": "Form fields and Firebase config", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Registration"],
                "summary": "Create a teacher account (requires the registration code)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterTeacherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Account created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Wrong registration code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate id or email", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/achievements": {
            "get": {
                "tags": ["Achievements"],
                "summary": "All achievements recorded by the logged-in teacher",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Achievement list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not a teacher session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Achievements"],
                "summary": "Record an achievement with an optional certificate file",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "student_id", "in": "formData", "required": true, "type": "string"},
                    {"name": "achievement_type", "in": "formData", "required": true, "type": "string", "enum": ["technical", "symposium", "publication", "project", "other"]},
                    {"name": "event_name", "in": "formData", "required": true, "type": "string"},
                    {"name": "achievement_date", "in": "formData", "required": true, "type": "string", "format": "date"},
                    {"name": "organizer", "in": "formData", "required": true, "type": "string"},
                    {"name": "position", "in": "formData", "required": true, "type": "string"},
                    {"name": "achievement_description", "in": "formData", "type": "string"},
                    {"name": "team_size", "in": "formData", "type": "string"},
                    {"name": "certificate", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Achievement stored", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid form input", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown student", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/achievements/recent": {
            "get": {
                "tags": ["Achievements"],
                "summary": "Most recent achievements for the logged-in teacher",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer", "default": 5}
                ],
                "responses": {
                    "200": {"description": "Recent achievements", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/achievements/stats": {
            "get": {
                "tags": ["Achievements"],
                "summary": "Dashboard aggregates for the logged-in teacher",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Stats with cache metadata", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/achievements/export": {
            "get": {
                "tags": ["Achievements"],
                "summary": "Download the teacher's achievements as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/certificates/{name}": {
            "get": {
                "tags": ["Certificates"],
                "summary": "Stream a stored certificate file",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File contents"},
                    "404": {"description": "Unknown certificate", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["id", "password"],
            "properties": {
                "id": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expires_in": {"type": "integer"},
                "issued_at": {"type": "string", "format": "date-time"},
                "user": {"$ref": "#/definitions/Identity"}
            }
        },
        "Identity": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["STUDENT", "TEACHER"]},
                "id": {"type": "string"},
                "full_name": {"type": "string"},
                "department": {"type": "string"},
                "federated": {"type": "boolean"}
            }
        },
        "FederatedLoginRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "email": {"type": "string"},
                "displayName": {"type": "string"},
                "photoURL": {"type": "string"},
                "uid": {"type": "string"},
                "idToken": {"type": "string"}
            }
        },
        "FederatedLoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "redirectUrl": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "FirebaseClientConfig": {
            "type": "object",
            "properties": {
                "apiKey": {"type": "string"},
                "authDomain": {"type": "string"},
                "projectId": {"type": "string"},
                "storageBucket": {"type": "string"},
                "messagingSenderId": {"type": "string"},
                "appId": {"type": "string"}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "required": ["student_id", "student_name", "email", "password"],
            "properties": {
                "student_id": {"type": "string"},
                "student_name": {"type": "string"},
                "email": {"type": "string"},
                "phone_number": {"type": "string"},
                "password": {"type": "string"},
                "student_gender": {"type": "string"},
                "student_dept": {"type": "string"}
            }
        },
        "RegisterTeacherRequest": {
            "type": "object",
            "required": ["teacher_id", "teacher_name", "email", "password", "teacher_code"],
            "properties": {
                "teacher_id": {"type": "string"},
                "teacher_name": {"type": "string"},
                "email": {"type": "string"},
                "phone_number": {"type": "string"},
                "password": {"type": "string"},
                "teacher_gender": {"type": "string"},
                "teacher_dept": {"type": "string"},
                "teacher_code": {"type": "string"}
            }
        },
        "TeacherStats": {
            "type": "object",
            "properties": {
                "total_achievements": {"type": "integer"},
                "students_managed": {"type": "integer"},
                "this_week": {"type": "integer"}
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
