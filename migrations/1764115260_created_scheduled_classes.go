package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_classes0001",
			"name": "scheduled_classes",
			"type": "base",
			"system": false,
			"fields": [
				{
					"id": "text_class_pk",
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
					"id": "number_class_id",
					"name": "class_id",
					"type": "number",
					"required": true,
					"presentable": true,
					"onlyInt": true,
					"min": null,
					"max": null
				},
				{
					"id": "text_class_title",
					"name": "title",
					"type": "text",
					"required": true,
					"presentable": true,
					"min": 0,
					"max": 0,
					"pattern": ""
				},
				{
					"id": "text_class_teacher",
					"name": "teacher",
					"type": "text",
					"required": false,
					"presentable": false,
					"min": 0,
					"max": 0,
					"pattern": ""
				},
				{
					"id": "date_class_start",
					"name": "start",
					"type": "date",
					"required": true,
					"presentable": false,
					"min": "",
					"max": ""
				},
				{
					"id": "date_class_end",
					"name": "end",
					"type": "date",
					"required": false,
					"presentable": false,
					"min": "",
					"max": ""
				},
				{
					"id": "number_class_booked",
					"name": "spots_booked",
					"type": "number",
					"required": false,
					"presentable": false,
					"onlyInt": true,
					"min": 0,
					"max": null
				},
				{
					"id": "number_class_total",
					"name": "spots_total",
					"type": "number",
					"required": true,
					"presentable": false,
					"onlyInt": true,
					"min": 0,
					"max": null
				},
				{
					"id": "text_class_color",
					"name": "background_color",
					"type": "text",
					"required": false,
					"presentable": false,
					"min": 0,
					"max": 0,
					"pattern": ""
				},
				{
					"id": "autodate_class_created",
					"name": "created",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": false
				},
				{
					"id": "autodate_class_updated",
					"name": "updated",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": true
				}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_scheduled_classes_class_id ON scheduled_classes (class_id)",
				"CREATE INDEX idx_scheduled_classes_start ON scheduled_classes (start)"
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
		collection, err := app.FindCollectionByNameOrId("pbc_classes0001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
