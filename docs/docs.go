// Package docs contém a especificação OpenAPI gerada a partir das anotações dos handlers.
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
        "/gs1/decode": {
            "post": {
                "description": "Aceita a forma legível (AI)valor ou a compacta com FNC1.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["gs1"],
                "summary": "Decodifica uma leitura GS1",
                "parameters": [
                    {"description": "Conteúdo lido", "name": "scan", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.DecodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Campos extraídos", "schema": {"$ref": "#/definitions/gs1.ParsedFields"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/gs1/encode": {
            "post": {
                "description": "Monta a carga GS1 (compacta e legível) a partir de GTIN, datas, lote e serial.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["gs1"],
                "summary": "Codifica uma etiqueta GS1",
                "parameters": [
                    {"description": "Dados de identificação", "name": "label", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.EncodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Carga codificada", "schema": {"$ref": "#/definitions/domain.Label"}},
                    "400": {"description": "Campo ausente ou inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/gs1/gtin/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["gs1"],
                "summary": "Valida e normaliza um GTIN",
                "parameters": [
                    {"description": "GTIN de 8 a 14 dígitos", "name": "gtin", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.GTINRequest"}}
                ],
                "responses": {
                    "200": {"description": "GTIN-14 normalizado", "schema": {"$ref": "#/definitions/domain.GTINResponse"}},
                    "400": {"description": "Tamanho ou dígito verificador inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/gs1/verify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["gs1"],
                "summary": "Confere uma leitura contra a carga esperada",
                "parameters": [
                    {"description": "Carga esperada e lida", "name": "verify", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.VerifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Resultado da comparação", "schema": {"$ref": "#/definitions/domain.VerifyResult"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/quota/add-on": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quota"],
                "summary": "Credita um pacote adicional de cota SSCC",
                "parameters": [
                    {"description": "Empresa e quantidade", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.AddOnRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saldo após o crédito", "schema": {"$ref": "#/definitions/domain.AddOnResponse"}},
                    "400": {"description": "Entrada inválida", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "401": {"description": "Token ausente ou inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Apenas administradores da própria empresa", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/sscc/generate": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Gera códigos de box, carton e pallet consumindo cota; falhas posteriores ao consumo estornam a cota.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sscc"],
                "summary": "Gera SSCCs hierárquicos",
                "parameters": [
                    {"description": "Multiplicidades e níveis solicitados", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.GenerationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Códigos gerados", "schema": {"$ref": "#/definitions/domain.GenerationResult"}},
                    "400": {"description": "Entrada inválida ou SKU sem regra de embalagem", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "402": {"description": "Cota insuficiente", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Limite de uso ou teto por requisição excedido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "422": {"description": "Hierarquia box < carton < pallet violada", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "500": {"description": "Falha de alocação ou gravação", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.AddOnRequest": {
            "type": "object",
            "properties": {
                "company_id": {"type": "string", "example": "acme"},
                "quantity": {"type": "integer", "example": 500}
            }
        },
        "domain.AddOnResponse": {
            "type": "object",
            "properties": {
                "balance": {"type": "integer", "example": 568},
                "company_id": {"type": "string", "example": "acme"}
            }
        },
        "domain.DecodeRequest": {
            "type": "object",
            "properties": {
                "raw": {"type": "string"}
            }
        },
        "domain.EncodeRequest": {
            "type": "object",
            "properties": {
                "batch_no": {"type": "string", "example": "B1"},
                "company": {"type": "string"},
                "expiry_date": {"type": "string", "example": "2025-12-31"},
                "gtin": {"type": "string", "example": "8901234567895"},
                "mfg_date": {"type": "string", "example": "2025-01-15"},
                "mrp": {"type": "string", "example": "149,90"},
                "serial_no": {"type": "string", "example": "S1"},
                "sku": {"type": "string"}
            }
        },
        "domain.ErrorResponse": {
            "description": "Estrutura padronizada para respostas de erro na API.",
            "type": "object",
            "properties": {
                "category": {"type": "string", "example": "QUOTA_EXHAUSTED"},
                "code": {"type": "integer", "example": 402},
                "message": {"type": "string", "example": "Cota insuficiente: solicitados 32, disponíveis 10."},
                "reason": {"type": "string", "example": "quota_exceeded"}
            }
        },
        "domain.GTINRequest": {
            "type": "object",
            "properties": {
                "gtin": {"type": "string", "example": "4006381333931"}
            }
        },
        "domain.GTINResponse": {
            "type": "object",
            "properties": {
                "gtin": {"type": "string", "example": "04006381333931"},
                "valid": {"type": "boolean"}
            }
        },
        "domain.GeneratedCode": {
            "type": "object",
            "properties": {
                "sequence": {"type": "integer"},
                "serial": {"type": "integer"},
                "sscc": {"type": "string", "example": "106141411234567897"}
            }
        },
        "domain.GenerationRequest": {
            "type": "object",
            "properties": {
                "batch_no": {"type": "string", "example": "B1"},
                "boxes_per_carton": {"type": "integer", "example": 5},
                "cartons_per_pallet": {"type": "integer", "example": 4},
                "expiry_date": {"type": "string", "example": "2025-12-31"},
                "generate_box": {"type": "boolean"},
                "generate_carton": {"type": "boolean"},
                "generate_pallet": {"type": "boolean"},
                "pallets": {"type": "integer", "example": 2},
                "sku": {"type": "string", "example": "SKU-001"},
                "units_per_box": {"type": "integer", "example": 10}
            }
        },
        "domain.GenerationResult": {
            "type": "object",
            "properties": {
                "boxes": {"type": "array", "items": {"$ref": "#/definitions/domain.GeneratedCode"}},
                "cartons": {"type": "array", "items": {"$ref": "#/definitions/domain.GeneratedCode"}},
                "company_prefix": {"type": "string", "example": "0614141"},
                "first_serial": {"type": "integer"},
                "pallets": {"type": "array", "items": {"$ref": "#/definitions/domain.GeneratedCode"}},
                "total_count": {"type": "integer", "example": 32},
                "warning": {"type": "string"}
            }
        },
        "domain.Label": {
            "type": "object",
            "properties": {
                "gtin": {"type": "string"},
                "human_readable": {"type": "string"},
                "payload": {"type": "string"}
            }
        },
        "domain.VerifyRequest": {
            "type": "object",
            "properties": {
                "expected": {"type": "string"},
                "scanned": {"type": "string"}
            }
        },
        "domain.VerifyResult": {
            "type": "object",
            "properties": {
                "expected": {"type": "string"},
                "match": {"type": "boolean"},
                "scan_parsed": {"type": "boolean"},
                "scanned": {"type": "string"}
            }
        },
        "gs1.ParsedFields": {
            "type": "object",
            "properties": {
                "batchNo": {"type": "string"},
                "company": {"type": "string"},
                "containedUnits": {"type": "string"},
                "count": {"type": "string"},
                "expiryDate": {"type": "string"},
                "format": {"type": "string"},
                "gtin": {"type": "string"},
                "mfgDate": {"type": "string"},
                "mrp": {"type": "string"},
                "parsed": {"type": "boolean"},
                "raw": {"type": "string"},
                "serialNo": {"type": "string"},
                "sku": {"type": "string"},
                "sscc": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "GoTrace API",
	Description:      "Codec GS1 e alocador hierárquico de SSCC.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
