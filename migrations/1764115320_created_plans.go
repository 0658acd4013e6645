package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_plans000001",
			"name": "plans",
			"type": "base",
			"system": false,
			"fields": [
				{
					"id": "text_plan_pk",
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
					"id": "text_plan_id",
					"name": "plan_id",
					"type": "text",
					"required": true,
					"presentable": true,
					"min": 0,
					"max": 0,
					"pattern": ""
				},
				{
					"id": "text_plan_label",
					"name": "label",
					"type": "text",
					"required": true,
					"presentable": false,
					"min": 0,
					"max": 0,
					"pattern": ""
				},
				{
					"id": "number_plan_price",
					"name": "price",
					"type": "number",
					"required": true,
					"presentable": false,
					"onlyInt": false,
					"min": 0,
					"max": null
				},
				{
					"id": "number_plan_months",
					"name": "months",
					"type": "number",
					"required": true,
					"presentable": false,
					"onlyInt": true,
					"min": 1,
					"max": null
				},
				{
					"id": "text_plan_billing",
					"name": "billing",
					"type": "text",
					"required": false,
					"presentable": false,
					"min": 0,
					"max": 0,
					"pattern": ""
				}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_plans_plan_id ON plans (plan_id)"
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
		collection, err := app.FindCollectionByNameOrId("pbc_plans000001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
