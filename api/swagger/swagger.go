package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Unit Progress API",
        "description": "Progress-reporting dashboard API for unit project tracking",
        "version": "3.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login and token issuance"},
        {"name": "Units", "description": "Reporting unit management"},
        {"name": "Groups", "description": "Project group management"},
        {"name": "Projects", "description": "Project management and trash"},
        {"name": "Reports", "description": "Progress report submission"},
        {"name": "Dashboard", "description": "Aggregated dashboard view"},
        {"name": "Backup", "description": "Full data export and import"},
        {"name": "System", "description": "Metrics and AI summary"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login as admin or unit",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/units": {
            "get": {
                "tags": ["Units"],
                "summary": "List units",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Units"],
                "summary": "Create unit",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnitInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/units/{id}": {
            "put": {
                "tags": ["Units"],
                "summary": "Update unit",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnitInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Units"],
                "summary": "Delete unit and cascade its projects and reports",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/groups": {
            "get": {
                "tags": ["Groups"],
                "summary": "List groups",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Groups"],
                "summary": "Create group",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GroupInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/groups/{id}": {
            "put": {
                "tags": ["Groups"],
                "summary": "Update group",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GroupInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Groups"],
                "summary": "Delete group and ungroup its projects",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/projects": {
            "get": {
                "tags": ["Projects"],
                "summary": "List active projects",
                "parameters": [
                    {"name": "unitId", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "string"},
                    {"name": "groupId", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "includeDeleted", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Projects"],
                "summary": "Create project",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProjectInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/projects/trash": {
            "get": {
                "tags": ["Projects"],
                "summary": "List trashed projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/projects/{id}": {
            "put": {
                "tags": ["Projects"],
                "summary": "Update project and sync denormalized report fields",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProjectInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Projects"],
                "summary": "Permanently delete project and its reports",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/projects/{id}/trash": {
            "post": {
                "tags": ["Projects"],
                "summary": "Move project to trash",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/projects/{id}/restore": {
            "post": {
                "tags": ["Projects"],
                "summary": "Restore project from trash",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "List reports with filters",
                "parameters": [
                    {"name": "unitId", "in": "query", "type": "string"},
                    {"name": "projectId", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "string"},
                    {"name": "dateStart", "in": "query", "type": "string"},
                    {"name": "dateEnd", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Reports"],
                "summary": "Submit progress report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Report for another unit", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/prefill": {
            "get": {
                "tags": ["Reports"],
                "summary": "Latest report per project for form prefill",
                "parameters": [
                    {"name": "projectId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/{id}": {
            "delete": {
                "tags": ["Reports"],
                "summary": "Delete report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Aggregated dashboard view",
                "parameters": [
                    {"name": "unitId", "in": "query", "type": "string"},
                    {"name": "projectId", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "string"},
                    {"name": "groupId", "in": "query", "type": "string"},
                    {"name": "dateStart", "in": "query", "type": "string"},
                    {"name": "dateEnd", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export filtered reports as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/summary": {
            "post": {
                "tags": ["System"],
                "summary": "Generate AI summary of filtered dashboard data",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/backup/export": {
            "get": {
                "tags": ["Backup"],
                "summary": "Export all collections as a backup file",
                "responses": {
                    "200": {"description": "Backup JSON download"}
                }
            }
        },
        "/backup/import": {
            "post": {
                "tags": ["Backup"],
                "summary": "Import a backup file, overwriting matching records",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unrecognized backup format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/backup/archive": {
            "post": {
                "tags": ["Backup"],
                "summary": "Store a backup snapshot on the server",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/backup/download/{token}": {
            "get": {
                "tags": ["Backup"],
                "summary": "Download an archived snapshot via signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Backup JSON download"}
                }
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Runtime and cache metrics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "target": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["target", "password"]
        },
        "UnitInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "shortName": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["name", "shortName"]
        },
        "GroupInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            },
            "required": ["name"]
        },
        "ProjectInput": {
            "type": "object",
            "properties": {
                "unitId": {"type": "string"},
                "name": {"type": "string"},
                "fiscalYear": {"type": "string"},
                "groupId": {"type": "string"}
            },
            "required": ["unitId", "name"]
        },
        "ReportInput": {
            "type": "object",
            "properties": {
                "projectId": {"type": "string"},
                "reportDateStart": {"type": "string"},
                "reportDateEnd": {"type": "string"},
                "progress": {"type": "number"},
                "pastPerformance": {"type": "string"},
                "nextPlan": {"type": "string"},
                "obstacles": {"type": "string"},
                "remarks": {"type": "string"}
            },
            "required": ["projectId"]
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
