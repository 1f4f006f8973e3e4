package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Megapixel API",
        "description": "Class marketplace backend: catalog, review workflow, cart and paid enrollment",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "auth", "description": "Token issuance"},
        {"name": "users", "description": "Accounts and roles"},
        {"name": "classes", "description": "Catalog and review workflow"},
        {"name": "selections", "description": "Pre-payment cart"},
        {"name": "enrollments", "description": "Paid enrollments"},
        {"name": "payments", "description": "Payment processor pass-through"}
    ],
    "paths": {
        "/jwt": {
            "post": {
                "tags": ["auth"],
                "summary": "Issue an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}}
                }
            }
        },
        "/newUser": {
            "post": {
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}},
                    "200": {"description": "Already registered"}
                }
            }
        },
        "/instructors": {
            "get": {
                "tags": ["users"],
                "summary": "List instructors",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}}
                }
            }
        },
        "/allRegisteredUsers": {
            "get": {
                "tags": ["users"],
                "summary": "List registered users (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/allRegisteredUsers/export": {
            "get": {
                "tags": ["users"],
                "summary": "Export registered users as CSV or PDF (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/userRole/{email}": {
            "get": {
                "tags": ["users"],
                "summary": "Look up a user by email",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users/role/{id}": {
            "put": {
                "tags": ["users"],
                "summary": "Change a user's role (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRoleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users/admin/{email}": {
            "get": {
                "tags": ["users"],
                "summary": "Check whether the caller is an admin",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/users/instructor/{email}": {
            "get": {
                "tags": ["users"],
                "summary": "Check whether the caller is an instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/users/student/{email}": {
            "get": {
                "tags": ["users"],
                "summary": "Check whether the caller is a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["classes"],
                "summary": "List approved classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}}
                }
            }
        },
        "/manageClasses": {
            "get": {
                "tags": ["classes"],
                "summary": "List all classes in every review state (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}}
                }
            }
        },
        "/classes/approve/{id}": {
            "put": {
                "tags": ["classes"],
                "summary": "Approve or deny a pending class (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewClassRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Class"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes/feedback/{id}": {
            "patch": {
                "tags": ["classes"],
                "summary": "Attach reviewer feedback",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/instructorAddedClasses": {
            "post": {
                "tags": ["classes"],
                "summary": "Submit a class for review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Class"}}
                }
            }
        },
        "/instructorsAddedClass/{email}": {
            "get": {
                "tags": ["classes"],
                "summary": "List classes submitted by an instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}}
                }
            }
        },
        "/updateavailableseats/{id}": {
            "put": {
                "tags": ["classes"],
                "summary": "Take one seat from a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Class"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Sold out", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/selectedClass": {
            "post": {
                "tags": ["selections"],
                "summary": "Add a class to the caller's cart",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SelectedClass"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/myclass/{email}": {
            "get": {
                "tags": ["selections"],
                "summary": "List a student's selected classes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/SelectedClassDetail"}}}
                }
            }
        },
        "/findSelectedClass/{id}": {
            "get": {
                "tags": ["selections"],
                "summary": "Fetch a single selection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SelectedClassDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/deleteSelectedClass/{id}": {
            "delete": {
                "tags": ["selections"],
                "summary": "Remove a selection from the cart",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/create-payment-intent": {
            "post": {
                "tags": ["payments"],
                "summary": "Create a payment intent",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentIntentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PaymentIntentResponse"}}
                }
            }
        },
        "/payments": {
            "post": {
                "tags": ["enrollments"],
                "summary": "Record a completed payment and enroll the student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/PaymentResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/myEnrolledClass/{email}": {
            "get": {
                "tags": ["enrollments"],
                "summary": "List a student's enrolled classes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/EnrolledClass"}}}
                }
            }
        },
        "/myEnrolledClass/{email}/receipt": {
            "get": {
                "tags": ["enrollments"],
                "summary": "Download an enrollment receipt (PDF)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        }
    },
    "definitions": {
        "TokenRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            },
            "required": ["email"]
        },
        "TokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "photoURL": {"type": "string"},
                "role": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "RegisterUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "photoURL": {"type": "string"},
                "role": {"type": "string"}
            },
            "required": ["email"]
        },
        "UpdateRoleRequest": {
            "type": "object",
            "properties": {
                "newRole": {"type": "string"}
            },
            "required": ["newRole"]
        },
        "Class": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "image": {"type": "string"},
                "instructorName": {"type": "string"},
                "instructorEmail": {"type": "string"},
                "availableSeats": {"type": "integer"},
                "price": {"type": "number"},
                "status": {"type": "string"},
                "feedback": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "SubmitClassRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "image": {"type": "string"},
                "instructorName": {"type": "string"},
                "instructorEmail": {"type": "string"},
                "availableSeats": {"type": "integer"},
                "price": {"type": "number"}
            },
            "required": ["title", "instructorName", "instructorEmail"]
        },
        "ReviewClassRequest": {
            "type": "object",
            "properties": {
                "newStatus": {"type": "string"}
            },
            "required": ["newStatus"]
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "feedback": {"type": "string"}
            },
            "required": ["feedback"]
        },
        "SelectClassRequest": {
            "type": "object",
            "properties": {
                "classId": {"type": "string"}
            },
            "required": ["classId"]
        },
        "SelectedClass": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "studentEmail": {"type": "string"},
                "classId": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "SelectedClassDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "studentEmail": {"type": "string"},
                "classId": {"type": "string"},
                "classTitle": {"type": "string"},
                "image": {"type": "string"},
                "instructorName": {"type": "string"},
                "price": {"type": "number"},
                "availableSeats": {"type": "integer"},
                "createdAt": {"type": "string"}
            }
        },
        "PaymentIntentRequest": {
            "type": "object",
            "properties": {
                "price": {"type": "number"}
            },
            "required": ["price"]
        },
        "PaymentIntentResponse": {
            "type": "object",
            "properties": {
                "clientSecret": {"type": "string"}
            }
        },
        "PaymentRequest": {
            "type": "object",
            "properties": {
                "classId": {"type": "string"},
                "transactionId": {"type": "string"},
                "price": {"type": "number"}
            },
            "required": ["classId", "transactionId"]
        },
        "PaymentResult": {
            "type": "object",
            "properties": {
                "inserted": {"type": "boolean"},
                "removedSelections": {"type": "integer"},
                "enrollment": {"$ref": "#/definitions/EnrolledClass"}
            }
        },
        "EnrolledClass": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "studentEmail": {"type": "string"},
                "classId": {"type": "string"},
                "classTitle": {"type": "string"},
                "transactionId": {"type": "string"},
                "amountMinor": {"type": "integer"},
                "createdAt": {"type": "string"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "boolean"},
                "message": {"type": "string"}
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
