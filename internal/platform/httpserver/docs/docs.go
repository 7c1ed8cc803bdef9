// Package docs holds the generated OpenAPI document served at /swagger/.
// Regenerate with `swag init -g internal/platform/httpserver/server.go`.
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
        "/api/fees/v1/config": {
            "post": {
                "tags": ["fees"],
                "summary": "Initialize the program fee configuration",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/fees/v1/config/collector": {
            "get": {
                "tags": ["fees"],
                "summary": "Resolve the active fee collector",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["fees"],
                "summary": "Update the fee collector",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/registries": {
            "post": {
                "tags": ["governance"],
                "summary": "Initialize a token registry",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/governances": {
            "post": {
                "tags": ["governance"],
                "summary": "Initialize governance for a mint",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/proposals": {
            "get": {
                "tags": ["governance"],
                "summary": "List proposals by mint",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["governance"],
                "summary": "Create a proposal",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/proposals/{proposal_id}": {
            "get": {
                "tags": ["governance"],
                "summary": "Get a proposal",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/proposals/{proposal_id}/execute": {
            "post": {
                "tags": ["governance"],
                "summary": "Execute a proposal after voting ends",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/proposals/{proposal_id}/tally": {
            "get": {
                "tags": ["governance"],
                "summary": "Tally a proposal's votes",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/escrows/v1/locks": {
            "post": {
                "tags": ["escrows"],
                "summary": "Lock tokens against a proposal choice",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/escrows/v1/settlements/winner": {
            "post": {
                "tags": ["escrows"],
                "summary": "Settle a winning escrow",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/escrows/v1/settlements/loser": {
            "post": {
                "tags": ["escrows"],
                "summary": "Settle a losing escrow",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/staking/v1/pools": {
            "post": {
                "tags": ["staking"],
                "summary": "Initialize a staking pool",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/staking/v1/stake": {
            "post": {
                "tags": ["staking"],
                "summary": "Stake tokens",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/staking/v1/unstake": {
            "post": {
                "tags": ["staking"],
                "summary": "Unstake tokens after the lockup",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/staking/v1/claims": {
            "post": {
                "tags": ["staking"],
                "summary": "Claim pro-rata staking rewards",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/staking/v1/distributions": {
            "post": {
                "tags": ["staking"],
                "summary": "Distribute rewards into a pool",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Launchpad Governance API",
	Description:      "Token-weighted multi-choice governance with escrowed voting and staking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
