package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Agenda API",
        "description": "Event aggregation and scheduling engine for the personal dashboard",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timeline", "description": "Unified merged timeline"},
        {"name": "Events", "description": "Personal event management"},
        {"name": "Commitments", "description": "Recurring goals and weekly commitments"},
        {"name": "Feed", "description": "External calendar feed registration"},
        {"name": "Slots", "description": "Free-slot search"},
        {"name": "Dashboard", "description": "Composed landing-page summary"},
        {"name": "Export", "description": "Agenda downloads"}
    ],
    "paths": {
        "/timeline": {
            "get": {
                "tags": ["Timeline"],
                "summary": "Merged timeline",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string", "format": "date-time"},
                    {"name": "to", "in": "query", "type": "string", "format": "date-time"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timeline/refresh": {
            "post": {
                "tags": ["Timeline"],
                "summary": "Refetch the external feed and recompute",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List personal events",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create a personal event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get one personal event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Events"],
                "summary": "Update a personal event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete a personal event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/commitments": {
            "get": {
                "tags": ["Commitments"],
                "summary": "List commitments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Commitments"],
                "summary": "Create a commitment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCommitmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/commitments/{id}": {
            "get": {
                "tags": ["Commitments"],
                "summary": "Get one commitment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Commitments"],
                "summary": "Update a commitment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCommitmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Commitments"],
                "summary": "Delete a commitment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/commitments/{id}/progress": {
            "get": {
                "tags": ["Commitments"],
                "summary": "Progress report for a commitment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/feed": {
            "get": {
                "tags": ["Feed"],
                "summary": "Current feed registration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Feed"],
                "summary": "Register or replace the external feed",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterFeedRequest"}}
                ],
                "responses": {
                    "204": {"description": "Registered"}
                }
            },
            "delete": {
                "tags": ["Feed"],
                "summary": "Unregister the external feed",
                "responses": {
                    "204": {"description": "Removed"}
                }
            }
        },
        "/slots/search": {
            "post": {
                "tags": ["Slots"],
                "summary": "Find the earliest free slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SlotSearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/agenda/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the merged timeline",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "CreateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"},
                "location": {"type": "string"},
                "category": {"type": "string"},
                "goal_ref": {"type": "string"}
            },
            "required": ["title", "start", "end"]
        },
        "UpdateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"},
                "location": {"type": "string"},
                "category": {"type": "string"},
                "goal_ref": {"type": "string"}
            }
        },
        "CreateCommitmentRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "weekly_commitment_hours": {"type": "number"},
                "start_date": {"type": "string", "format": "date-time"},
                "target_date": {"type": "string", "format": "date-time"},
                "status": {"type": "string"}
            },
            "required": ["title", "weekly_commitment_hours"]
        },
        "UpdateCommitmentRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "weekly_commitment_hours": {"type": "number"},
                "start_date": {"type": "string", "format": "date-time"},
                "target_date": {"type": "string", "format": "date-time"},
                "status": {"type": "string"}
            }
        },
        "RegisterFeedRequest": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "payload": {"type": "string"}
            }
        },
        "SlotSearchRequest": {
            "type": "object",
            "properties": {
                "duration_min": {"type": "integer"},
                "start_from": {"type": "string", "format": "date-time"},
                "days": {"type": "integer"},
                "day_start_hour": {"type": "integer"},
                "day_end_hour": {"type": "integer"}
            },
            "required": ["duration_min"]
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
                "pagination": {"type": "object"},
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
