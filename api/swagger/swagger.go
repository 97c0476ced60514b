package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
      "title": "Article Site Editorial API",
      "description": "Editorial publishing workflow: drafts, admin triage, category reviews, publication and audit history.",
      "version": "1.0.0"
  },
  "basePath": "/",
  "schemes": [
      "http"
  ],
  "securityDefinitions": {
      "BearerAuth": {
          "type": "apiKey",
          "name": "Authorization",
          "in": "header"
      }
  },
  "tags": [
      {
          "name": "Articles",
          "description": "Drafts and public reads"
      },
      {
          "name": "Workflow",
          "description": "Editorial status transitions"
      },
      {
          "name": "History",
          "description": "Status audit trail"
      },
      {
          "name": "Categories",
          "description": "Categories, reviewer pools and review policies"
      },
      {
          "name": "Rules",
          "description": "Writing guidelines"
      },
      {
          "name": "Notifications",
          "description": "In-app inbox"
      },
      {
          "name": "Dashboard",
          "description": "Admin statistics and reviewer queues"
      },
      {
          "name": "Metrics",
          "description": "Observability"
      }
  ],
  "paths": {
      "/health": {
          "get": {
              "summary": "Liveness check",
              "responses": {
                  "200": {
                      "description": "OK"
                  }
              }
          }
      },
      "/ready": {
          "get": {
              "summary": "Readiness check",
              "responses": {
                  "200": {
                      "description": "Ready"
                  },
                  "503": {
                      "description": "A dependency is unreachable"
                  }
              }
          }
      },
      "/metrics": {
          "get": {
              "tags": [
                  "Metrics"
              ],
              "summary": "Prometheus metrics",
              "responses": {
                  "200": {
                      "description": "OK"
                  }
              }
          }
      },
      "/api/v1/metrics/summary": {
          "get": {
              "tags": [
                  "Metrics"
              ],
              "summary": "In-process request, cache and workflow counters",
              "parameters": [],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles": {
          "get": {
              "tags": [
                  "Articles"
              ],
              "summary": "List all articles (admin)",
              "parameters": [
                  {
                      "name": "status",
                      "in": "query",
                      "type": "string"
                  },
                  {
                      "name": "category_id",
                      "in": "query",
                      "type": "string"
                  },
                  {
                      "name": "q",
                      "in": "query",
                      "type": "string"
                  },
                  {
                      "name": "page",
                      "in": "query",
                      "type": "integer"
                  },
                  {
                      "name": "page_size",
                      "in": "query",
                      "type": "integer"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          },
          "post": {
              "tags": [
                  "Articles"
              ],
              "summary": "Create a draft article",
              "parameters": [
                  {
                      "name": "payload",
                      "in": "body",
                      "required": true,
                      "schema": {
                          "$ref": "#/definitions/ArticleRequest"
                      }
                  }
              ],
              "responses": {
                  "201": {
                      "description": "Created",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/mine": {
          "get": {
              "tags": [
                  "Articles"
              ],
              "summary": "List the caller's own articles",
              "parameters": [
                  {
                      "name": "status",
                      "in": "query",
                      "type": "string"
                  },
                  {
                      "name": "page",
                      "in": "query",
                      "type": "integer"
                  },
                  {
                      "name": "page_size",
                      "in": "query",
                      "type": "integer"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/search": {
          "get": {
              "tags": [
                  "Articles"
              ],
              "summary": "Search published articles",
              "parameters": [
                  {
                      "name": "q",
                      "in": "query",
                      "type": "string"
                  },
                  {
                      "name": "lang",
                      "in": "query",
                      "type": "string"
                  },
                  {
                      "name": "category_id",
                      "in": "query",
                      "type": "string"
                  },
                  {
                      "name": "keyword",
                      "in": "query",
                      "type": "string"
                  },
                  {
                      "name": "page",
                      "in": "query",
                      "type": "integer"
                  },
                  {
                      "name": "page_size",
                      "in": "query",
                      "type": "integer"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              }
          }
      },
      "/api/v1/articles/slug/{slug}": {
          "get": {
              "tags": [
                  "Articles"
              ],
              "summary": "Read an article by slug",
              "parameters": [
                  {
                      "name": "slug",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              }
          }
      },
      "/api/v1/articles/{id}": {
          "get": {
              "tags": [
                  "Articles"
              ],
              "summary": "Get article by ID",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              }
          },
          "put": {
              "tags": [
                  "Articles"
              ],
              "summary": "Update a draft article",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": true,
                      "schema": {
                          "$ref": "#/definitions/ArticleRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/submit": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Submit an article for admin review",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/resubmit-publish": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Resubmit with changes and publish immediately",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/reset": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Move an article back to draft",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/send-to-review": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Send a pending article to reviewers",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": false,
                      "schema": {
                          "$ref": "#/definitions/SendToReviewRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/reviewers": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Assign additional reviewers",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": true,
                      "schema": {
                          "$ref": "#/definitions/AssignReviewersRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/approve": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Approve an article as an assigned reviewer",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": false,
                      "schema": {
                          "$ref": "#/definitions/ReviewerCommentRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/request-changes": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Request changes as an assigned reviewer",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": false,
                      "schema": {
                          "$ref": "#/definitions/ReviewerCommentRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/reviews": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Record a per-category review decision",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": true,
                      "schema": {
                          "$ref": "#/definitions/CategoryReviewRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/publish": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Publish an article (admin)",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": false,
                      "schema": {
                          "$ref": "#/definitions/AdminNoteRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/reject": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Reject an article (admin)",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": true,
                      "schema": {
                          "$ref": "#/definitions/RejectRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/return": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Send an article back to its author (admin)",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": false,
                      "schema": {
                          "$ref": "#/definitions/AdminNoteRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/unpublish": {
          "post": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Withdraw a published article to draft (admin)",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": false,
                      "schema": {
                          "$ref": "#/definitions/AdminNoteRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "403": {
                      "description": "Permission denied",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  },
                  "409": {
                      "description": "Invalid transition or concurrent change",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/publishability": {
          "get": {
              "tags": [
                  "Workflow"
              ],
              "summary": "Evaluate whether an article meets its category policies",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/history": {
          "get": {
              "tags": [
                  "History"
              ],
              "summary": "Status history of an article",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "order",
                      "in": "query",
                      "type": "string"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/history/replay": {
          "get": {
              "tags": [
                  "History"
              ],
              "summary": "Reconstruct and verify the status sequence",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/articles/{id}/history/export": {
          "get": {
              "tags": [
                  "History"
              ],
              "summary": "Download the status history as CSV or PDF",
              "produces": [
                  "text/csv",
                  "application/pdf"
              ],
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "format",
                      "in": "query",
                      "type": "string"
                  }
              ],
              "security": [
                  {
                      "BearerAuth": []
                  }
              ],
              "responses": {
                  "200": {
                      "description": "File",
                      "schema": {
                          "type": "file"
                      }
                  }
              }
          }
      },
      "/api/v1/categories": {
          "get": {
              "tags": [
                  "Categories"
              ],
              "summary": "List categories",
              "parameters": [
                  {
                      "name": "all",
                      "in": "query",
                      "type": "boolean"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              }
          },
          "post": {
              "tags": [
                  "Categories"
              ],
              "summary": "Create category (admin)",
              "parameters": [
                  {
                      "name": "payload",
                      "in": "body",
                      "required": true,
                      "schema": {
                          "$ref": "#/definitions/CreateCategoryRequest"
                      }
                  }
              ],
              "responses": {
                  "201": {
                      "description": "Created",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/categories/{id}": {
          "get": {
              "tags": [
                  "Categories"
              ],
              "summary": "Get category",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              }
          }
      },
      "/api/v1/categories/{id}/reviewers": {
          "put": {
              "tags": [
                  "Categories"
              ],
              "summary": "Replace a category's reviewer pool (admin)",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": true,
                      "schema": {
                          "$ref": "#/definitions/SetReviewersRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/categories/{id}/policy": {
          "get": {
              "tags": [
                  "Categories"
              ],
              "summary": "Effective review policy of a category",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          },
          "put": {
              "tags": [
                  "Categories"
              ],
              "summary": "Create or replace a category review policy (admin)",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  },
                  {
                      "name": "payload",
                      "in": "body",
                      "required": true,
                      "schema": {
                          "$ref": "#/definitions/CategoryPolicyRequest"
                      }
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/rules": {
          "get": {
              "tags": [
                  "Rules"
              ],
              "summary": "List every rules revision (admin)",
              "parameters": [],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          },
          "post": {
              "tags": [
                  "Rules"
              ],
              "summary": "Create writing rules (admin)",
              "parameters": [
                  {
                      "name": "payload",
                      "in": "body",
                      "required": true,
                      "schema": {
                          "$ref": "#/definitions/CreateRulesRequest"
                      }
                  }
              ],
              "responses": {
                  "201": {
                      "description": "Created",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/rules/active": {
          "get": {
              "tags": [
                  "Rules"
              ],
              "summary": "Currently active writing rules",
              "parameters": [],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              }
          }
      },
      "/api/v1/rules/{id}/activate": {
          "post": {
              "tags": [
                  "Rules"
              ],
              "summary": "Make a rules revision the active one (admin)",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "204": {
                      "description": "No Content"
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/notifications": {
          "get": {
              "tags": [
                  "Notifications"
              ],
              "summary": "List the caller's notifications",
              "parameters": [
                  {
                      "name": "unread_only",
                      "in": "query",
                      "type": "boolean"
                  },
                  {
                      "name": "page",
                      "in": "query",
                      "type": "integer"
                  },
                  {
                      "name": "page_size",
                      "in": "query",
                      "type": "integer"
                  }
              ],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/notifications/unread-count": {
          "get": {
              "tags": [
                  "Notifications"
              ],
              "summary": "Number of unread notifications",
              "parameters": [],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/notifications/read-all": {
          "post": {
              "tags": [
                  "Notifications"
              ],
              "summary": "Mark every notification read",
              "parameters": [],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/notifications/{id}/read": {
          "post": {
              "tags": [
                  "Notifications"
              ],
              "summary": "Mark one notification read",
              "parameters": [
                  {
                      "name": "id",
                      "in": "path",
                      "required": true,
                      "type": "string"
                  }
              ],
              "responses": {
                  "204": {
                      "description": "No Content"
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/dashboard/admin": {
          "get": {
              "tags": [
                  "Dashboard"
              ],
              "summary": "Admin dashboard statistics",
              "parameters": [],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      },
      "/api/v1/dashboard/reviewer": {
          "get": {
              "tags": [
                  "Dashboard"
              ],
              "summary": "Reviewer work queue",
              "parameters": [],
              "responses": {
                  "200": {
                      "description": "OK",
                      "schema": {
                          "$ref": "#/definitions/ResponseEnvelope"
                      }
                  }
              },
              "security": [
                  {
                      "BearerAuth": []
                  }
              ]
          }
      }
  },
  "definitions": {
      "ArticleRequest": {
          "type": "object",
          "required": [
              "title",
              "content",
              "category_ids"
          ],
          "properties": {
              "title": {
                  "type": "object",
                  "additionalProperties": {
                      "type": "string"
                  },
                  "example": {
                      "uz": "Sarlavha",
                      "en": "Title"
                  }
              },
              "content": {
                  "type": "object",
                  "additionalProperties": {
                      "type": "string"
                  },
                  "example": {
                      "uz": "Sarlavha",
                      "en": "Title"
                  }
              },
              "category_ids": {
                  "type": "array",
                  "items": {
                      "type": "string"
                  }
              },
              "keywords": {
                  "type": "string"
              },
              "review_mode": {
                  "type": "string",
                  "enum": [
                      "ALL",
                      "ANY"
                  ]
              }
          }
      },
      "SendToReviewRequest": {
          "type": "object",
          "properties": {
              "reviewer_ids": {
                  "type": "array",
                  "items": {
                      "type": "string"
                  }
              },
              "note": {
                  "type": "string"
              }
          }
      },
      "AssignReviewersRequest": {
          "type": "object",
          "required": [
              "reviewer_ids"
          ],
          "properties": {
              "reviewer_ids": {
                  "type": "array",
                  "items": {
                      "type": "string"
                  }
              }
          }
      },
      "ReviewerCommentRequest": {
          "type": "object",
          "properties": {
              "comment": {
                  "type": "string"
              }
          }
      },
      "CategoryReviewRequest": {
          "type": "object",
          "required": [
              "category_id",
              "decision"
          ],
          "properties": {
              "category_id": {
                  "type": "string"
              },
              "decision": {
                  "type": "string",
                  "enum": [
                      "APPROVE",
                      "CHANGES",
                      "REJECT"
                  ]
              },
              "comment": {
                  "type": "string"
              }
          }
      },
      "AdminNoteRequest": {
          "type": "object",
          "properties": {
              "note": {
                  "type": "string"
              }
          }
      },
      "RejectRequest": {
          "type": "object",
          "required": [
              "reason"
          ],
          "properties": {
              "reason": {
                  "type": "string"
              }
          }
      },
      "CreateCategoryRequest": {
          "type": "object",
          "required": [
              "name"
          ],
          "properties": {
              "slug": {
                  "type": "string"
              },
              "name": {
                  "type": "object",
                  "additionalProperties": {
                      "type": "string"
                  },
                  "example": {
                      "uz": "Sarlavha",
                      "en": "Title"
                  }
              },
              "description": {
                  "type": "string"
              },
              "is_active": {
                  "type": "boolean"
              }
          }
      },
      "SetReviewersRequest": {
          "type": "object",
          "properties": {
              "reviewer_ids": {
                  "type": "array",
                  "items": {
                      "type": "string"
                  }
              }
          }
      },
      "CategoryPolicyRequest": {
          "type": "object",
          "properties": {
              "min_approvals_to_publish": {
                  "type": "integer"
              },
              "max_rejections_before_block": {
                  "type": "integer"
              },
              "min_required_reviews": {
                  "type": "integer"
              },
              "allow_admin_override": {
                  "type": "boolean"
              },
              "review_deadline_hours": {
                  "type": "integer"
              },
              "require_changes_comment": {
                  "type": "boolean"
              },
              "require_reject_comment": {
                  "type": "boolean"
              }
          }
      },
      "CreateRulesRequest": {
          "type": "object",
          "required": [
              "title",
              "content"
          ],
          "properties": {
              "title": {
                  "type": "object",
                  "additionalProperties": {
                      "type": "string"
                  },
                  "example": {
                      "uz": "Sarlavha",
                      "en": "Title"
                  }
              },
              "content": {
                  "type": "object",
                  "additionalProperties": {
                      "type": "string"
                  },
                  "example": {
                      "uz": "Sarlavha",
                      "en": "Title"
                  }
              },
              "activate": {
                  "type": "boolean"
              }
          }
      },
      "Pagination": {
          "type": "object",
          "properties": {
              "page": {
                  "type": "integer"
              },
              "page_size": {
                  "type": "integer"
              },
              "total_count": {
                  "type": "integer"
              }
          }
      },
      "APIError": {
          "type": "object",
          "properties": {
              "code": {
                  "type": "string"
              },
              "message": {
                  "type": "string"
              },
              "status": {
                  "type": "integer"
              }
          }
      },
      "ResponseEnvelope": {
          "type": "object",
          "properties": {
              "data": {
                  "type": "object"
              },
              "error": {
                  "$ref": "#/definitions/APIError"
              },
              "pagination": {
                  "$ref": "#/definitions/Pagination"
              },
              "meta": {
                  "type": "object"
              }
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
