// Package docs registers the OpenAPI document served under /docs/*. It mirrors
// the swag annotations on the handlers and is maintained by hand.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Matchday"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/head-to-head": {
            "get": {
                "description": "Wins, draws, percentages, and the five most recent meetings of two teams. Recomputed on every request.",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Head-to-head record",
                "parameters": [
                    {"type": "integer", "description": "First team ID", "name": "teamA", "in": "query", "required": true},
                    {"type": "integer", "description": "Second team ID", "name": "teamB", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/stats.HeadToHeadSummary"}},
                    "304": {"description": "Not modified (ETag match)"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/leagues": {
            "get": {
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "List leagues",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.League"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "Create league",
                "parameters": [
                    {"description": "League", "name": "league", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.League"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.League"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/leagues/{leagueID}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "Delete league",
                "parameters": [
                    {"type": "integer", "description": "League ID", "name": "leagueID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/leagues/{leagueID}/table": {
            "get": {
                "description": "Standings across every season of the league: 3 points per win, 1 per draw. Ordered by points, goal difference, goals scored, then team ID.",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "League table",
                "parameters": [
                    {"type": "integer", "description": "League ID", "name": "leagueID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/stats.Standing"}}},
                    "304": {"description": "Not modified (ETag match)"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/leagues/{leagueID}/top-scorers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Top scorers",
                "parameters": [
                    {"type": "integer", "description": "League ID", "name": "leagueID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "304": {"description": "Not modified (ETag match)"}
                }
            }
        },
        "/leagues/{leagueID}/top-assists": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Top assists",
                "parameters": [
                    {"type": "integer", "description": "League ID", "name": "leagueID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "304": {"description": "Not modified (ETag match)"}
                }
            }
        },
        "/leagues/{leagueID}/leaders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Stat leaders",
                "parameters": [
                    {"type": "integer", "description": "League ID", "name": "leagueID", "in": "path", "required": true},
                    {"enum": ["goals", "assists", "shots_on_target", "key_passes", "yellow_cards", "red_cards"], "type": "string", "description": "Counter to rank by", "name": "metric", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/matches": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Record match",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/player-stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["player-stats"],
                "summary": "Recent player stats",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.PlayerStat"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["player-stats"],
                "summary": "Record player stats",
                "parameters": [
                    {"description": "Player stat line", "name": "stat", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.PlayerStat"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.PlayerStat"}}
                }
            }
        },
        "/players": {
            "get": {"produces": ["application/json"], "tags": ["players"], "summary": "List players", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["players"], "summary": "Create player", "responses": {"201": {"description": "Created"}}}
        },
        "/players/{playerID}": {
            "delete": {"produces": ["application/json"], "tags": ["players"], "summary": "Delete player", "parameters": [{"type": "integer", "description": "Player ID", "name": "playerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/positions": {
            "get": {"produces": ["application/json"], "tags": ["positions"], "summary": "List positions", "responses": {"200": {"description": "OK"}}}
        },
        "/seasons": {
            "get": {"produces": ["application/json"], "tags": ["seasons"], "summary": "List seasons", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["seasons"], "summary": "Create season", "responses": {"201": {"description": "Created"}}}
        },
        "/seasons/{seasonID}": {
            "delete": {"produces": ["application/json"], "tags": ["seasons"], "summary": "Delete season", "parameters": [{"type": "integer", "description": "Season ID", "name": "seasonID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/teams": {
            "get": {"produces": ["application/json"], "tags": ["teams"], "summary": "List teams", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["teams"], "summary": "Create team", "responses": {"201": {"description": "Created"}}}
        },
        "/teams/{teamID}": {
            "delete": {"produces": ["application/json"], "tags": ["teams"], "summary": "Delete team", "parameters": [{"type": "integer", "description": "Team ID", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "model.League": {
            "type": "object",
            "properties": {
                "country": {"type": "string"},
                "league_id": {"type": "integer"},
                "league_name": {"type": "string"}
            }
        },
        "model.PlayerStat": {
            "type": "object",
            "properties": {
                "assists": {"type": "integer"},
                "goals": {"type": "integer"},
                "key_passes": {"type": "integer"},
                "match_id": {"type": "integer"},
                "player_id": {"type": "integer"},
                "rating": {"type": "number"},
                "red_cards": {"type": "integer"},
                "shots_on_target": {"type": "integer"},
                "stat_id": {"type": "integer"},
                "yellow_cards": {"type": "integer"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "detail": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        },
        "stats.HeadToHeadSummary": {
            "type": "object",
            "properties": {
                "draws": {"type": "integer"},
                "drawPct": {"type": "integer"},
                "recentMatches": {"type": "array", "items": {"$ref": "#/definitions/stats.Meeting"}},
                "teamA": {"type": "integer"},
                "teamAWinPct": {"type": "integer"},
                "teamAWins": {"type": "integer"},
                "teamB": {"type": "integer"},
                "teamBWinPct": {"type": "integer"},
                "teamBWins": {"type": "integer"},
                "totalMatches": {"type": "integer"}
            }
        },
        "stats.Meeting": {
            "type": "object",
            "properties": {
                "match_date": {"type": "string"},
                "match_id": {"type": "integer"},
                "match_time": {"type": "string"},
                "teamA_goals": {"type": "integer"},
                "teamB_goals": {"type": "integer"},
                "venue": {"type": "string"}
            }
        },
        "stats.Standing": {
            "type": "object",
            "properties": {
                "draws": {"type": "integer"},
                "goal_diff": {"type": "integer"},
                "goals_against": {"type": "integer"},
                "goals_for": {"type": "integer"},
                "losses": {"type": "integer"},
                "played": {"type": "integer"},
                "points": {"type": "integer"},
                "team_id": {"type": "integer"},
                "team_name": {"type": "string"},
                "wins": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:5001",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Matchday API",
	Description:      "Football data API: leagues, teams, players, seasons, match results, and player match stats, plus head-to-head records, league tables, and leaderboards recomputed on every request.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
