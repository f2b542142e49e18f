// Package docs Beach Safety Agent API.
//
// Локальный API агента пляжной безопасности для companion-интерфейса:
// состояние трекера, текущая зона, резолюция координат, настройки
// уведомлений и совет дня.
//
// swagger:meta
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": ["http"],
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "tags": ["Status"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/status": {
            "get": {
                "tags": ["Status"],
                "summary": "Agent status",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/zone/current": {
            "get": {
                "tags": ["Status"],
                "summary": "Current zone",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No resolution yet"}
                }
            }
        },
        "/api/v1/resolve": {
            "post": {
                "tags": ["Status"],
                "summary": "Resolve coordinate",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid coordinates"}
                }
            }
        },
        "/api/v1/language": {
            "post": {
                "tags": ["Status"],
                "summary": "Switch content language",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid request"}
                }
            }
        },
        "/api/v1/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get settings",
                "responses": {"200": {"description": "OK"}}
            },
            "patch": {
                "tags": ["Settings"],
                "summary": "Update settings",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid request"}
                }
            }
        },
        "/api/v1/tips/daily": {
            "get": {
                "tags": ["Tips"],
                "summary": "Daily tip",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Tips disabled"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8787",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Beach Safety Agent API",
	Description:      "Local control API of the beach safety agent",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
