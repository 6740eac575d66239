// Package docs регистрирует описание API для swagger UI на /docs/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Вход пользователя",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/Credentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "401": {"description": "Неверные учетные данные", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "429": {"description": "Слишком много запросов", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Регистрация пользователя",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/Credentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "500": {"description": "Ошибка", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Выход",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}}}
            }
        },
        "/session": {
            "get": {
                "tags": ["Session"],
                "summary": "Текущая сессия",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}}}
            }
        },
        "/plans": {
            "get": {
                "tags": ["Plans"],
                "summary": "Тарифы премиум",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}}}
            }
        },
        "/view": {
            "get": {
                "tags": ["View"],
                "summary": "Состав экрана",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}}}
            }
        },
        "/view/{panel}/{action}": {
            "post": {
                "tags": ["View"],
                "summary": "Открыть или закрыть панель",
                "parameters": [
                    {"in": "path", "name": "panel", "required": true, "type": "string", "enum": ["login", "camera", "plans"]},
                    {"in": "path", "name": "action", "required": true, "type": "string", "enum": ["open", "close"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "404": {"description": "Неизвестная панель", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/upgrade": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Premium"],
                "summary": "Переход на премиум",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpgradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "404": {"description": "Пользователь не найден", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Неизвестный тариф", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/capture": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Capture"],
                "summary": "Состояние распознавания",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}}}
            }
        },
        "/capture/camera": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Capture"],
                "summary": "Включить или выключить камеру",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "409": {"description": "Камера недоступна", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/capture/recording": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Capture"],
                "summary": "Начать или остановить запись",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "409": {"description": "Камера выключена", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/capture/speak": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Capture"],
                "summary": "Озвучить текст",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "403": {"description": "Только для премиум", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "Credentials": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "demo@example.com"},
                "password": {"type": "string", "example": "demo123"}
            }
        },
        "UpgradeRequest": {
            "type": "object",
            "required": ["plan_id"],
            "properties": {
                "plan_id": {"type": "string", "enum": ["monthly", "yearly"]}
            }
        },
        "Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "OK"},
                "data": {}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "Error"},
                "error": {"type": "string", "example": "invalid request body"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo метаданные API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "GestureSpeak API",
	Description:      "Демо-движок перевода жестов в речь",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
