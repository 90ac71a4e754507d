package registry

// Default is the built-in pricing schema: fourteen sections covering every
// table the pricing management screens edit. It is validated once at package
// init; the server serves it verbatim to clients so the frontend drives its
// editor dispatch from the same schema the backend enforces.
var Default = MustNew(defaultSections)

var defaultSections = []PricingSection{
	{
		ID:          "product_types",
		Title:       "Product Types",
		Description: "Sign product categories and their base rates",
		Tables: []TableConfig{
			{
				TableKey:        "product_types",
				Title:           "Product Types",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "type_code", Label: "Type Code", Type: TypeString, Required: true, Width: 120},
					{Key: "name", Label: "Name", Type: TypeString, Required: true, Width: 200},
					{Key: "description", Label: "Description", Type: TypeText},
					{Key: "is_lit", Label: "Illuminated", Type: TypeBoolean},
					{Key: "base_rate", Label: "Base Rate", Type: TypeDecimal, Required: true, DecimalPlaces: 2},
					{Key: "sort_order", Label: "Sort Order", Type: TypeInteger, Hidden: true},
				},
			},
		},
	},
	{
		ID:          "channel_letters",
		Title:       "Channel Letters",
		Description: "Letter styles and per-inch fabrication rates",
		Tables: []TableConfig{
			{
				TableKey:        "letter_styles",
				Title:           "Letter Styles",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "name", Label: "Style", Type: TypeString, Required: true, Width: 180},
					{Key: "return_depth", Label: "Return Depth", Type: TypeEnum, Required: true, EnumValues: []string{"3\"", "4\"", "5\""}},
					{Key: "min_height_in", Label: "Min Height (in)", Type: TypeDecimal, DecimalPlaces: 1},
					{Key: "max_height_in", Label: "Max Height (in)", Type: TypeDecimal, DecimalPlaces: 1},
					{Key: "rate_per_inch", Label: "Rate / Inch", Type: TypeDecimal, Required: true, DecimalPlaces: 4},
				},
			},
		},
	},
	{
		ID:          "sheet_materials",
		Title:       "Sheet Materials",
		Description: "Face and backer stock costs",
		Tables: []TableConfig{
			{
				TableKey:        "sheet_materials",
				Title:           "Sheet Materials",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "name", Label: "Material", Type: TypeString, Required: true, Width: 200},
					{Key: "material_type", Label: "Type", Type: TypeEnum, Required: true, EnumValues: []string{"aluminum", "acrylic", "polycarbonate", "dibond"}},
					{Key: "thickness_in", Label: "Thickness (in)", Type: TypeDecimal, Required: true, DecimalPlaces: 3},
					{Key: "cost_per_sheet", Label: "Cost / Sheet", Type: TypeDecimal, Required: true, DecimalPlaces: 2},
					{Key: "sheet_width_in", Label: "Width (in)", Type: TypeInteger},
					{Key: "sheet_height_in", Label: "Height (in)", Type: TypeInteger},
					{Key: "effective_date", Label: "Effective", Type: TypeDate},
				},
			},
		},
	},
	{
		ID:          "trim_and_coil",
		Title:       "Trim Cap & Coil",
		Description: "Trim cap colors and coil stock",
		Tables: []TableConfig{
			{
				TableKey:        "trim_cap_colors",
				Title:           "Trim Cap Colors",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "color_name", Label: "Color", Type: TypeString, Required: true, Width: 160},
					{Key: "color_code", Label: "Code", Type: TypeString, Width: 100},
					{Key: "cost_per_ft", Label: "Cost / Ft", Type: TypeDecimal, Required: true, DecimalPlaces: 4},
					{Key: "special_order", Label: "Special Order", Type: TypeBoolean},
				},
			},
			{
				TableKey:        "coil_stock",
				Title:           "Coil Stock",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "color_name", Label: "Color", Type: TypeString, Required: true, Width: 160},
					{Key: "width_in", Label: "Width (in)", Type: TypeDecimal, Required: true, DecimalPlaces: 2},
					{Key: "cost_per_lb", Label: "Cost / Lb", Type: TypeDecimal, Required: true, DecimalPlaces: 4},
				},
			},
		},
	},
	{
		ID:          "leds",
		Title:       "LED Modules",
		Description: "LED module catalog and per-module costs",
		Tables: []TableConfig{
			{
				TableKey:        "led_modules",
				Title:           "LED Modules",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "part_number", Label: "Part Number", Type: TypeString, Required: true, Width: 140},
					{Key: "brand", Label: "Brand", Type: TypeString, Required: true},
					{Key: "color", Label: "Color", Type: TypeEnum, Required: true, EnumValues: []string{"white", "warm_white", "red", "green", "blue", "rgb"}},
					{Key: "watts", Label: "Watts", Type: TypeDecimal, DecimalPlaces: 2},
					{Key: "lumens", Label: "Lumens", Type: TypeInteger},
					{Key: "cost_per_module", Label: "Cost / Module", Type: TypeDecimal, Required: true, DecimalPlaces: 4},
					{Key: "specs", Label: "Specs", Type: TypeJSON, Hidden: true},
				},
			},
		},
	},
	{
		ID:          "power_supplies",
		Title:       "Power Supplies",
		Description: "Transformers and drivers",
		Tables: []TableConfig{
			{
				TableKey:        "power_supplies",
				Title:           "Power Supplies",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "part_number", Label: "Part Number", Type: TypeString, Required: true, Width: 140},
					{Key: "watts", Label: "Watts", Type: TypeInteger, Required: true},
					{Key: "volts", Label: "Volts", Type: TypeEnum, Required: true, EnumValues: []string{"12", "24"}},
					{Key: "cost", Label: "Cost", Type: TypeDecimal, Required: true, DecimalPlaces: 2},
					{Key: "ul_listed", Label: "UL Listed", Type: TypeBoolean},
				},
			},
		},
	},
	{
		ID:          "vinyl",
		Title:       "Vinyl",
		Description: "Vinyl series, colors and per-square-foot costs",
		Tables: []TableConfig{
			{
				TableKey:        "vinyl_types",
				Title:           "Vinyl Types",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "series", Label: "Series", Type: TypeString, Required: true, Width: 120},
					{Key: "color_name", Label: "Color", Type: TypeString, Required: true},
					{Key: "color_code", Label: "Code", Type: TypeString, Width: 100},
					{Key: "finish", Label: "Finish", Type: TypeEnum, EnumValues: []string{"gloss", "matte", "satin"}},
					{Key: "cost_per_sqft", Label: "Cost / SqFt", Type: TypeDecimal, Required: true, DecimalPlaces: 4},
					{Key: "in_stock", Label: "In Stock", Type: TypeBoolean},
				},
			},
		},
	},
	{
		ID:          "painting",
		Title:       "Painting",
		Description: "Paint finish rates and minimum charges",
		Tables: []TableConfig{
			{
				TableKey:        "paint_rates",
				Title:           "Paint Rates",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "finish_type", Label: "Finish", Type: TypeEnum, Required: true, EnumValues: []string{"satin", "semi_gloss", "gloss", "matte"}},
					{Key: "prep_rate", Label: "Prep Rate", Type: TypeDecimal, DecimalPlaces: 2},
					{Key: "rate_per_sqft", Label: "Rate / SqFt", Type: TypeDecimal, Required: true, DecimalPlaces: 2},
					{Key: "min_charge", Label: "Min Charge", Type: TypeDecimal, DecimalPlaces: 2},
				},
			},
		},
	},
	{
		ID:          "labor",
		Title:       "Labor Rates",
		Description: "Shop labor rates by activity",
		Tables: []TableConfig{
			{
				TableKey:        "labor_rates",
				Title:           "Labor Rates",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "activity", Label: "Activity", Type: TypeString, Required: true, Width: 200},
					{Key: "rate_per_hour", Label: "Rate / Hour", Type: TypeDecimal, Required: true, DecimalPlaces: 2},
					{Key: "burden_pct", Label: "Burden %", Type: TypeDecimal, DecimalPlaces: 2},
					{Key: "effective_date", Label: "Effective", Type: TypeDate},
				},
			},
		},
	},
	{
		ID:          "shipping",
		Title:       "Shipping",
		Description: "Shipping zones and freight rates",
		Tables: []TableConfig{
			{
				TableKey:        "shipping_zones",
				Title:           "Shipping Zones",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "zone_code", Label: "Zone", Type: TypeString, Required: true, Width: 100},
					{Key: "description", Label: "Description", Type: TypeText},
					{Key: "base_charge", Label: "Base Charge", Type: TypeDecimal, Required: true, DecimalPlaces: 2},
					{Key: "per_lb_rate", Label: "Rate / Lb", Type: TypeDecimal, DecimalPlaces: 4},
					{Key: "transit_days", Label: "Transit Days", Type: TypeInteger},
				},
			},
		},
	},
	{
		ID:          "markup",
		Title:       "Markup & Margin",
		Description: "Cost-based markup multiplier tiers",
		Tables: []TableConfig{
			{
				TableKey:        "markup_tiers",
				Title:           "Markup Tiers",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "tier_name", Label: "Tier", Type: TypeString, Required: true, Width: 140},
					{Key: "cost_floor", Label: "Cost Floor", Type: TypeDecimal, Required: true, DecimalPlaces: 2},
					{Key: "cost_ceiling", Label: "Cost Ceiling", Type: TypeDecimal, DecimalPlaces: 2},
					{Key: "multiplier", Label: "Multiplier", Type: TypeDecimal, Required: true, DecimalPlaces: 4},
				},
			},
		},
	},
	{
		ID:          "quantity_discounts",
		Title:       "Quantity Discounts",
		Description: "Per-quantity discount percentages",
		Tables: []TableConfig{
			{
				TableKey:        "quantity_discounts",
				Title:           "Quantity Discounts",
				Editor:          EditorTable,
				HasActiveFilter: true,
				Columns: []ColumnConfig{
					{Key: "min_qty", Label: "Min Qty", Type: TypeInteger, Required: true},
					{Key: "max_qty", Label: "Max Qty", Type: TypeInteger},
					{Key: "discount_pct", Label: "Discount %", Type: TypeDecimal, Required: true, DecimalPlaces: 2},
				},
			},
		},
	},
	{
		ID:          "constants",
		Title:       "Global Constants",
		Description: "Shop-wide settings and pricing constants",
		Tables: []TableConfig{
			{
				TableKey: "shop_settings",
				Title:    "Shop Settings",
				Editor:   EditorForm,
				Columns: []ColumnConfig{
					{Key: "shop_name", Label: "Shop Name", Type: TypeString, Required: true},
					{Key: "default_margin_pct", Label: "Default Margin %", Type: TypeDecimal, Required: true, DecimalPlaces: 2},
					{Key: "wastage_pct", Label: "Wastage %", Type: TypeDecimal, DecimalPlaces: 2},
					{Key: "quote_valid_days", Label: "Quote Valid (days)", Type: TypeInteger},
					{Key: "include_shipping", Label: "Include Shipping", Type: TypeBoolean},
					{Key: "last_reviewed", Label: "Last Reviewed", Type: TypeDate},
				},
			},
			{
				TableKey: "pricing_constants",
				Title:    "Pricing Constants",
				Editor:   EditorKeyValue,
				Columns: []ColumnConfig{
					{Key: "constant_name", Label: "Constant", Type: TypeString, Required: true, ReadOnly: true, Width: 220},
					{Key: "config_value", Label: "Value", Type: TypeDecimal, Required: true, DecimalPlaces: 4},
					{Key: "description", Label: "Description", Type: TypeText},
				},
			},
		},
	},
	{
		ID:          "preview",
		Title:       "Pricing Preview",
		Description: "Read-only effective multiplier summary",
		Tables: []TableConfig{
			{
				TableKey:        "multiplier_summary",
				Title:           "Effective Multipliers",
				Editor:          EditorCustom,
				CustomComponent: "multiplier-summary",
			},
		},
	},
}
