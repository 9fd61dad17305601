package collections

import (
	"log/slog"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

// Setup programmatically creates/ensures the documents, document_items and
// document_charges collections exist.
func Setup(app *pocketbase.PocketBase) {
	kinds := make([]string, len(services.DocumentKinds))
	for i, k := range services.DocumentKinds {
		kinds[i] = string(k)
	}
	currencies := make([]string, len(services.SupportedCurrencies))
	for i, c := range services.SupportedCurrencies {
		currencies[i] = string(c)
	}
	itemTypes := make([]string, len(services.ItemTypes))
	for i, t := range services.ItemTypes {
		itemTypes[i] = string(t)
	}

	documents := ensureCollection(app, "documents", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "kind",
			Required:  true,
			Values:    kinds,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "doc_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "title", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "currency",
			Required:  true,
			Values:    currencies,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "exchange_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "dc_percent", Required: false})
		c.Fields.Add(&core.BoolField{Name: "dc_percent_set"})
		c.Fields.Add(&core.NumberField{Name: "dc_krw", Required: false})
		c.Fields.Add(&core.NumberField{Name: "dc_global", Required: false})
		c.Fields.Add(&core.NumberField{Name: "dc_base_krw", Required: false})
		c.Fields.Add(&core.NumberField{Name: "dc_base_global", Required: false})
		c.Fields.Add(&core.JSONField{Name: "totals"})
		c.Fields.Add(&core.TextField{Name: "warning", Required: false})
		c.Fields.Add(&core.TextField{Name: "remark", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "document_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "document",
			Required:      true,
			CollectionId:  documents.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "row_id", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "item_type",
			Required:  true,
			Values:    itemTypes,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "purchase_price_krw", Required: false})
		c.Fields.Add(&core.NumberField{Name: "purchase_price_global", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sales_price_krw", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sales_price_global", Required: false})
		c.Fields.Add(&core.NumberField{Name: "margin", Required: false})
		c.Fields.Add(&core.BoolField{Name: "margin_set"})
		c.Fields.Add(&core.BoolField{Name: "margin_derived"})
		c.Fields.Add(&core.NumberField{Name: "purchase_amount_krw", Required: false})
		c.Fields.Add(&core.NumberField{Name: "purchase_amount_global", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sales_amount_krw", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sales_amount_global", Required: false})
		c.Fields.Add(basisField())
		c.Fields.Add(&core.TextField{Name: "item_remark", Required: false})
		c.Fields.Add(&core.NumberField{Name: "packages", Required: false, OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "net_weight", Required: false})
		c.Fields.Add(&core.NumberField{Name: "gross_weight", Required: false})
		c.Fields.Add(&core.NumberField{Name: "measurement", Required: false})
		c.Fields.Add(&core.TextField{Name: "supplier", Required: false})
		c.Fields.Add(&core.TextField{Name: "lead_time", Required: false})
	})

	ensureCollection(app, "document_charges", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "document",
			Required:      true,
			CollectionId:  documents.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "charge_id", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "custom_charge", Required: false})
		c.Fields.Add(&core.NumberField{Name: "price_krw", Required: false})
		c.Fields.Add(&core.NumberField{Name: "price_global", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_checked"})
		c.Fields.Add(basisField())
	})
}

func basisField() *core.SelectField {
	return &core.SelectField{
		Name:      "basis",
		Required:  false,
		Values:    []string{string(services.BasisKRW), string(services.BasisForeign)},
		MaxSelect: 1,
	}
}

// ensureCollection checks if a collection already exists by name. If it does,
// any field addFields declares that the stored collection lacks is added and
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		addMissingFields(app, existing, addFields)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		slog.Error("collections: failed to create", "collection", name, "error", err)
		os.Exit(1)
	}

	slog.Info("collections: created", "collection", name, "id", collection.Id)
	return collection
}

// addMissingFields brings a collection created by an older build up to date.
func addMissingFields(app *pocketbase.PocketBase, existing *core.Collection, addFields func(*core.Collection)) {
	want := core.NewBaseCollection(existing.Name)
	addFields(want)

	var added []string
	for _, f := range want.Fields {
		if existing.Fields.GetByName(f.GetName()) != nil {
			continue
		}
		existing.Fields.Add(f)
		added = append(added, f.GetName())
	}
	if len(added) == 0 {
		slog.Debug("collections: already exists, skipping creation", "collection", existing.Name)
		return
	}

	if err := app.Save(existing); err != nil {
		slog.Error("collections: failed to add fields", "collection", existing.Name, "fields", added, "error", err)
		os.Exit(1)
	}
	slog.Info("collections: added fields", "collection", existing.Name, "fields", added)
}
