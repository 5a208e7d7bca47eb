package extractor

import "encoding/json"

// cnhCardSchema is the strict JSON schema for the structured CNH path.
// strict mode requires every property listed in required, so optional
// fields are represented by the "-" sentinel instead of omission.
var cnhCardSchema = json.RawMessage(`{
  "name": "cnh_card",
  "strict": true,
  "schema": {
    "type": "object",
    "additionalProperties": false,
    "properties": {
      "identificacao": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "nome": {"type": "string"},
          "data_nascimento": {"type": "string"},
          "local_nascimento": {"type": "string"},
          "nacionalidade": {"type": "string"},
          "pai": {"type": "string"},
          "mae": {"type": "string"}
        },
        "required": ["nome", "data_nascimento", "local_nascimento", "nacionalidade", "pai", "mae"]
      },
      "documento": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "registro_rg": {"type": "string"},
          "cpf": {"type": "string"},
          "categoria": {"type": "string"},
          "numero_registro_cnh": {"type": "string"},
          "primeira_habilitacao": {"type": "string"}
        },
        "required": ["registro_rg", "cpf", "categoria", "numero_registro_cnh", "primeira_habilitacao"]
      },
      "emissao": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "data_emissao": {"type": "string"},
          "validade": {"type": "string"}
        },
        "required": ["data_emissao", "validade"]
      },
      "categorias_adicionais": {
        "type": "array",
        "items": {"type": "string"}
      },
      "orgao_emissor": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "uf": {"type": "string"},
          "local_emissao": {"type": "string"},
          "codigo": {"type": "string"}
        },
        "required": ["uf", "local_emissao", "codigo"]
      }
    },
    "required": ["identificacao", "documento", "emissao", "categorias_adicionais", "orgao_emissor"]
  }
}`)
