package docs

import "github.com/swaggo/swag"

// @title           Retro Board API
// @version         1.0
// @description     API for collaborative retrospective boards: board and card mutations plus a per-board server-sent event stream

// @host      localhost:8080
// @BasePath  /

// @tag.name Boards
// @tag.description Board lifecycle operations

// @tag.name Cards
// @tag.description Card mutations: add, update, delete, upvote, move/merge

// @tag.name Stream
// @tag.description Per-board change stream (server-sent events)

// @tag.name Suggestions
// @tag.description AI-generated action item suggestions

// Register swagger info
func SwaggerInfo() *swag.Spec {
	spec, _ := swag.GetSwagger(swag.Name).(*swag.Spec)
	return spec
}
