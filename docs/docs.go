// Package docs contiene la definición OpenAPI registrada en swag.
// Regenerar con: swag init -g cmd/api/main.go
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
        "/alarms": {
            "get": {
                "produces": ["application/json"],
                "tags": ["alarms"],
                "summary": "Listar alarmas del dashboard",
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "store unavailable"}
                }
            }
        },
        "/alarms/{alarmID}": {
            "patch": {
                "consumes": ["application/json"],
                "tags": ["alarms"],
                "summary": "Activar/desactivar alarma",
                "parameters": [
                    {"type": "string", "name": "alarmID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "invalid json / is_active requerido"},
                    "401": {"description": "unauthorized"}
                }
            }
        },
        "/medications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Listar medicamentos",
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "store unavailable"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Crear medicamento",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "invalid json / campos requeridos"},
                    "401": {"description": "unauthorized"}
                }
            }
        },
        "/medications/{medicationID}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Editar medicamento",
                "parameters": [
                    {"type": "string", "name": "medicationID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "invalid json / campos requeridos"},
                    "401": {"description": "unauthorized"},
                    "404": {"description": "medication not found"}
                }
            }
        },
        "/medications/{medicationID}/alarms": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["alarms"],
                "summary": "Agregar alarma",
                "parameters": [
                    {"type": "string", "name": "medicationID", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "invalid json / campos requeridos"},
                    "401": {"description": "unauthorized"},
                    "412": {"description": "no medications registered"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "med-reminder API",
	Description:      "API de recordatorios de medicación: medicamentos, alarmas y sincronización por usuario.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
