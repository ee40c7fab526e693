package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Exams API",
        "description": "Enrolment, score entry and norm-referenced grading with ranked broadsheets.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Enrolment records"},
        {"name": "Scores", "description": "Section A/B score entry"},
        {"name": "Staff", "description": "Facilitator roster"},
        {"name": "Settings", "description": "School-wide settings"},
        {"name": "Exams", "description": "Broadsheets, report cards and facilitator performance"},
        {"name": "Ops", "description": "Health and instrumentation"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Ops"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Ops"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency failed its ping"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Ops"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/metrics/summary": {
            "get": {
                "tags": ["Ops"],
                "summary": "Instrumentation snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Enrol student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student with scores",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student bio-data and remarks",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Remove student and their scores",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/students/{id}/scores/{subject}": {
            "put": {
                "tags": ["Scores"],
                "summary": "Enter a subject score",
                "description": "Section A is capped at 40 and section B at 60 (100 for Junior High Science, scaled by 1/1.4).",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "subject", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScoreEntryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Subject finalized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Early-childhood department", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/staff": {
            "get": {
                "tags": ["Staff"],
                "summary": "List staff in roster order",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Staff"],
                "summary": "Add staff member",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StaffRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/staff/{id}": {
            "put": {
                "tags": ["Staff"],
                "summary": "Update staff member",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StaffRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Staff"],
                "summary": "Remove staff member",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get global settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Replace global settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exams/broadsheet": {
            "get": {
                "tags": ["Exams"],
                "summary": "Ranked master broadsheet",
                "parameters": [
                    {"name": "department", "in": "query", "required": true, "type": "string"},
                    {"name": "class", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Early-childhood department", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exams/report-cards/{studentId}": {
            "get": {
                "tags": ["Exams"],
                "summary": "Report card of one student",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exams/facilitators": {
            "get": {
                "tags": ["Exams"],
                "summary": "Facilitator performance",
                "parameters": [
                    {"name": "department", "in": "query", "required": true, "type": "string"},
                    {"name": "class", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "StudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "department": {"type": "string", "enum": ["Daycare", "Nursery", "Kindergarten", "Lower Basic School", "Upper Basic School", "Junior High School"]},
                "class_name": {"type": "string"},
                "gender": {"type": "string", "enum": ["Male", "Female"]},
                "date_of_birth": {"type": "string", "format": "date-time"},
                "guardian": {"type": "string"},
                "contact": {"type": "string"},
                "address": {"type": "string"},
                "attendance": {"type": "integer"},
                "overall_remark": {"type": "string"},
                "final_remark": {"type": "string"},
                "recommendation": {"type": "string"}
            },
            "required": ["name", "department", "class_name"]
        },
        "ScoreEntryRequest": {
            "type": "object",
            "properties": {
                "section_a": {"type": "number"},
                "section_b": {"type": "number"},
                "facilitator_remark": {"type": "string"}
            }
        },
        "StaffRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["Class Teacher", "Subject Teacher", "Both"]},
                "status": {"type": "string", "enum": ["Full Time", "Part Time"]},
                "subjects": {"type": "array", "items": {"type": "string"}},
                "contact": {"type": "string"},
                "qualification": {"type": "string"}
            },
            "required": ["name", "role"]
        },
        "UpdateSettingsRequest": {
            "type": "object",
            "properties": {
                "school_name": {"type": "string"},
                "exam_title": {"type": "string"},
                "mock_series": {"type": "string"},
                "term_info": {"type": "string"},
                "academic_year": {"type": "string"},
                "head_teacher_name": {"type": "string"},
                "attendance_total": {"type": "integer"},
                "facilitator_mapping": {"type": "object", "additionalProperties": {"type": "string"}},
                "grading_remarks": {"type": "object", "additionalProperties": {"type": "string"}},
                "custom_subjects": {"type": "array", "items": {"type": "string"}},
                "submitted_subjects": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["school_name"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
