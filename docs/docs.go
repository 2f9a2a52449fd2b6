// Package docs 注册酒店管理接口的 Swagger 文档
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
		"/": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reportes"
				],
				"summary": "Panel principal con contadores del día",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/register": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Formulario de registro",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Registrar un empleado",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			}
		},
		"/login": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Formulario de inicio de sesión",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Iniciar sesión",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			}
		},
		"/logout": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Cerrar sesión",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/usuarios": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Listar empleados",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/eliminar_usuario/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Eliminar un empleado",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/clientes": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"clientes"
				],
				"summary": "Listar clientes",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/agregar_cliente": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"clientes"
				],
				"summary": "Formulario de cliente",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/agregar": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"clientes"
				],
				"summary": "Crear un cliente",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/eliminar/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"clientes"
				],
				"summary": "Eliminar un cliente",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/buscar": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"clientes"
				],
				"summary": "Buscar clientes",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/buscar_reserva": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"clientes"
				],
				"summary": "Buscar cliente para reservar",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/habitaciones": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"habitaciones"
				],
				"summary": "Listar habitaciones",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/agregar_habitacion": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"habitaciones"
				],
				"summary": "Formulario de habitación",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"habitaciones"
				],
				"summary": "Crear una habitación",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/editar_habitacion/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"habitaciones"
				],
				"summary": "Datos para editar una habitación",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"habitaciones"
				],
				"summary": "Actualizar una habitación",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/cambiar_estado_habitacion/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"habitaciones"
				],
				"summary": "Cambiar el estado de una habitación",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/eliminar_habitacion/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"habitaciones"
				],
				"summary": "Eliminar una habitación",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/reservas": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reservas"
				],
				"summary": "Listar reservas",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/crear_reserva/{cliente_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reservas"
				],
				"summary": "Formulario de reserva",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "cliente_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reservas"
				],
				"summary": "Crear una reserva",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "cliente_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/eliminar_reserva/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reservas"
				],
				"summary": "Eliminar una reserva",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/cambiar_estado_reserva/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reservas"
				],
				"summary": "Cambiar el estado de una reserva",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/checkin_reserva/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reservas"
				],
				"summary": "Registrar la entrada",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/checkout_reserva/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reservas"
				],
				"summary": "Registrar la salida",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/reserva_rapida": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reservas"
				],
				"summary": "Habitaciones para reserva rápida",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reservas"
				],
				"summary": "Reserva rápida de visitante",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			}
		},
		"/pagos": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"pagos"
				],
				"summary": "Listar pagos",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/registrar_pago/{reserva_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"pagos"
				],
				"summary": "Formulario de pago",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "reserva_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"pagos"
				],
				"summary": "Registrar o actualizar el pago",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "reserva_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/cambiar_estado_pago/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"pagos"
				],
				"summary": "Cambiar el estado de un pago",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/eliminar_pago/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"pagos"
				],
				"summary": "Eliminar un pago",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/reportes": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reportes"
				],
				"summary": "Resumen general",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/reporte_ocupacion": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reportes"
				],
				"summary": "Reporte de ocupación",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/reporte_financiero": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reportes"
				],
				"summary": "Reporte financiero",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/reporte_financiero/exportar": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reportes"
				],
				"summary": "Exportar el reporte financiero a Excel",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/operaciones": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reportes"
				],
				"summary": "Últimas operaciones",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		}
	},
	"securityDefinitions": {
		"SessionCookie": {
			"type": "apiKey",
			"name": "token",
			"in": "cookie"
		}
	},
	"definitions": {
		"response.Response": {
			"type": "object",
			"properties": {
				"code": {
					"type": "integer"
				},
				"message": {
					"type": "string"
				},
				"data": {}
			}
		}
	}
}`

// SwaggerInfo Swagger 元信息
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Hotel Management API",
	Description:      "Gestión de clientes, habitaciones, reservas y pagos del hotel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
