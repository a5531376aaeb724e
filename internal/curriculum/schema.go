package curriculum

const courseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "title", "units"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string", "minLength": 1},
    "slug": {"type": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
    "description": {"type": "string"},
    "target_skill": {"type": "string"},
    "skill_repository": {"type": "string"},
    "license": {"type": "string"},
    "authors": {"type": "array", "items": {"type": "string"}, "uniqueItems": true},
    "modules": {"type": "array", "items": {"type": "integer"}, "uniqueItems": true},
    "units": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "skill"],
        "properties": {
          "id": {"type": "integer"},
          "title": {"type": "string", "minLength": 1},
          "skill": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "prerequisites": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

const skillsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "node": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "protected": {"type": "boolean"},
        "children": {"type": "array", "items": {"$ref": "#/definitions/node"}}
      }
    }
  },
  "type": "object",
  "required": ["key", "root"],
  "properties": {
    "key": {"type": "string", "minLength": 1},
    "root": {"$ref": "#/definitions/node"},
    "available": {"type": "array", "items": {"type": "string"}}
  }
}`

const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "authors": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "integer"},
          "name": {"type": "string", "minLength": 1},
          "department": {"type": "string"}
        }
      }
    },
    "modules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "integer"},
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"}
        }
      }
    }
  }
}`
