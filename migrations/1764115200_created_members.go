package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_members0001",
			"name": "members",
			"type": "base",
			"system": false,
			"fields": [
				{
					"id": "text_member_id",
					"name": "id",
					"type": "text",
					"system": true,
					"required": true,
					"primaryKey": true,
					"autogeneratePattern": "[a-z0-9]{15}",
					"pattern": "^[a-z0-9]+$",
					"min": 15,
					"max": 15,
					"presentable": false
				},
				{
					"id": "rel_member_user",
					"name": "user",
					"type": "relation",
					"required": true,
					"presentable": false,
					"collectionId": "_pb_users_auth_",
					"cascadeDelete": true,
					"minSelect": 0,
					"maxSelect": 1
				},
				{
					"id": "text_member_name",
					"name": "name",
					"type": "text",
					"required": false,
					"presentable": true,
					"min": 0,
					"max": 0,
					"pattern": ""
				},
				{
					"id": "text_member_rank",
					"name": "rank",
					"type": "text",
					"required": false,
					"presentable": false,
					"min": 0,
					"max": 0,
					"pattern": ""
				},
				{
					"id": "json_member_sub",
					"name": "subscription",
					"type": "json",
					"required": false,
					"presentable": false,
					"maxSize": 2000
				},
				{
					"id": "json_member_booked",
					"name": "booked_classes_id",
					"type": "json",
					"required": false,
					"presentable": false,
					"maxSize": 10000
				},
				{
					"id": "autodate_member_created",
					"name": "created",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": false
				},
				{
					"id": "autodate_member_updated",
					"name": "updated",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": true
				}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_members_user ON members (user)"
			],
			"listRule": null,
			"viewRule": null,
			"createRule": null,
			"updateRule": null,
			"deleteRule": null
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_members0001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
