package pages

import (
	"github.com/mesh-intelligence/frontdesk/pkg/crud"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func opts(values ...string) []types.Option {
	out := make([]types.Option, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		out = append(out, types.Option{Value: values[i], Label: values[i+1]})
	}
	return out
}

var (
	emailRule = mustRule(`value matches "^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$"`, "must be a valid email address")
	phoneRule = mustRule(`value matches "^\\+?[0-9 ()-]{6,20}$"`, "must be a valid phone number")
	urlRule   = mustRule(`value startsWith "http://" || value startsWith "https://"`, "must be an http(s) URL")
	positive  = mustRule(`value > 0`, "must be greater than zero")
)

// Builtin returns the registry of the standard console pages.
func Builtin() *Registry {
	r, err := NewRegistry(builtinPages()...)
	if err != nil {
		panic(err)
	}
	return r
}

func builtinPages() []Page {
	return []Page{
		{
			Name:    types.TableAmenities,
			Title:   "Amenities",
			Columns: []string{"name", "description", "category", "opening_hours", "capacity", "image_url", "is_active", "is_featured", "created_at", "updated_at"},
			Fields: []types.FieldConfig{
				{Key: "name", Label: "Name", Kind: types.FieldText, Required: true},
				{Key: "description", Label: "Description", Kind: types.FieldTextarea},
				{Key: "category", Label: "Category", Kind: types.FieldSelect, Options: opts(
					"spa", "Spa", "fitness", "Fitness", "pool", "Pool", "dining", "Dining", "business", "Business", "other", "Other")},
				{Key: "opening_hours", Label: "Opening hours", Kind: types.FieldText},
				{Key: "capacity", Label: "Capacity", Kind: types.FieldNumber, Validate: positive},
				{Key: "image_url", Label: "Image", Kind: types.FieldFile, Validate: urlRule},
				{Key: "is_active", Label: "Active", Kind: types.FieldBoolean, Default: true},
			},
			SearchFields: []string{"name", "description", "category"},
			FilterField:  "category",
			StatusField:  "is_active",
			Toggles:      []string{"is_featured"},
			Defaults:     types.Values{"is_featured": false},
			Sort:         crud.SortBy{Field: "name"},
		},
		{
			Name:    types.TableAnnouncements,
			Title:   "Announcements",
			Columns: []string{"title", "content", "priority", "publish_date", "expiry_date", "is_active", "created_at", "updated_at"},
			Fields: []types.FieldConfig{
				{Key: "title", Label: "Title", Kind: types.FieldText, Required: true},
				{Key: "content", Label: "Content", Kind: types.FieldTextarea, Required: true},
				{Key: "priority", Label: "Priority", Kind: types.FieldSelect, Default: "normal", Options: opts(
					"low", "Low", "normal", "Normal", "high", "High")},
				{Key: "publish_date", Label: "Publish date", Kind: types.FieldDate},
				{Key: "expiry_date", Label: "Expiry date", Kind: types.FieldDate},
				{Key: "is_active", Label: "Active", Kind: types.FieldBoolean, Default: true},
			},
			SearchFields: []string{"title", "content"},
			FilterField:  "priority",
			StatusField:  "is_active",
		},
		{
			Name:    types.TableStaff,
			Title:   "Staff",
			Columns: []string{"first_name", "last_name", "email", "phone", "department", "position", "hire_date", "is_active", "created_at", "updated_at"},
			Fields: []types.FieldConfig{
				{Key: "first_name", Label: "First name", Kind: types.FieldText, Required: true},
				{Key: "last_name", Label: "Last name", Kind: types.FieldText, Required: true},
				{Key: "email", Label: "Email", Kind: types.FieldText, Required: true, Validate: emailRule},
				{Key: "phone", Label: "Phone", Kind: types.FieldText, Validate: phoneRule},
				{Key: "department", Label: "Department", Kind: types.FieldSelect, Options: opts(
					"front_office", "Front office", "housekeeping", "Housekeeping", "maintenance", "Maintenance",
					"food_beverage", "Food & beverage", "management", "Management")},
				{Key: "position", Label: "Position", Kind: types.FieldText},
				{Key: "hire_date", Label: "Hire date", Kind: types.FieldDate},
				{Key: "is_active", Label: "Active", Kind: types.FieldBoolean, Default: true},
			},
			SearchFields: []string{"first_name", "last_name", "email", "position"},
			FilterField:  "department",
			StatusField:  "is_active",
			Sort:         crud.SortBy{Field: "last_name"},
		},
		{
			Name:    types.TableTasks,
			Title:   "Tasks",
			Columns: []string{"title", "description", "priority", "status", "assigned_to", "due_date", "room_number", "created_at", "updated_at"},
			Fields: []types.FieldConfig{
				{Key: "title", Label: "Title", Kind: types.FieldText, Required: true},
				{Key: "description", Label: "Description", Kind: types.FieldTextarea},
				{Key: "priority", Label: "Priority", Kind: types.FieldSelect, Default: "medium", Options: opts(
					"low", "Low", "medium", "Medium", "high", "High", "urgent", "Urgent")},
				{Key: "status", Label: "Status", Kind: types.FieldSelect, Options: opts(
					"pending", "Pending", "in_progress", "In progress", "completed", "Completed", "cancelled", "Cancelled")},
				{Key: "assigned_to", Label: "Assigned to", Kind: types.FieldText},
				{Key: "due_date", Label: "Due date", Kind: types.FieldDate},
				{Key: "room_number", Label: "Room", Kind: types.FieldText},
			},
			SearchFields: []string{"title", "description", "assigned_to", "room_number"},
			FilterField:  "status",
		},
		{
			Name:    types.TableRestaurants,
			Title:   "Restaurants",
			Columns: []string{"name", "cuisine_type", "description", "location", "opening_hours", "phone", "price_range", "capacity", "is_recommended", "is_active", "created_at", "updated_at"},
			Fields: []types.FieldConfig{
				{Key: "name", Label: "Name", Kind: types.FieldText, Required: true},
				{Key: "cuisine_type", Label: "Cuisine", Kind: types.FieldText},
				{Key: "description", Label: "Description", Kind: types.FieldTextarea},
				{Key: "location", Label: "Location", Kind: types.FieldText},
				{Key: "opening_hours", Label: "Opening hours", Kind: types.FieldText},
				{Key: "phone", Label: "Phone", Kind: types.FieldText, Validate: phoneRule},
				{Key: "price_range", Label: "Price range", Kind: types.FieldSelect, Options: opts(
					"$", "Budget", "$$", "Moderate", "$$$", "Upscale", "$$$$", "Fine dining")},
				{Key: "capacity", Label: "Seats", Kind: types.FieldNumber, Validate: positive},
				{Key: "is_recommended", Label: "Recommended", Kind: types.FieldBoolean},
				{Key: "is_active", Label: "Active", Kind: types.FieldBoolean, Default: true},
			},
			SearchFields: []string{"name", "cuisine_type", "location"},
			FilterField:  "price_range",
			StatusField:  "is_active",
			Toggles:      []string{"is_recommended"},
			Sort:         crud.SortBy{Field: "name"},
		},
		{
			Name:    types.TableShopOrders,
			Title:   "Shop orders",
			Columns: []string{"guest_name", "room_number", "item_name", "quantity", "total_amount", "status", "notes", "created_at", "updated_at"},
			Fields: []types.FieldConfig{
				{Key: "guest_name", Label: "Guest", Kind: types.FieldText, Required: true},
				{Key: "room_number", Label: "Room", Kind: types.FieldText, Required: true},
				{Key: "item_name", Label: "Item", Kind: types.FieldText, Required: true},
				{Key: "quantity", Label: "Quantity", Kind: types.FieldNumber, Required: true, Default: 1, Validate: positive},
				{Key: "total_amount", Label: "Total", Kind: types.FieldNumber},
				{Key: "status", Label: "Status", Kind: types.FieldSelect, Options: opts(
					"pending", "Pending", "confirmed", "Confirmed", "delivered", "Delivered", "cancelled", "Cancelled")},
				{Key: "notes", Label: "Notes", Kind: types.FieldTextarea},
			},
			SearchFields:   []string{"guest_name", "room_number", "item_name"},
			FilterField:    "status",
			ReadOnlyCreate: true,
		},
		{
			Name:    types.TableAbsenceRequests,
			Title:   "Absence requests",
			Columns: []string{"staff_name", "absence_type", "start_date", "end_date", "reason", "status", "created_at", "updated_at"},
			Fields: []types.FieldConfig{
				{Key: "staff_name", Label: "Staff member", Kind: types.FieldText, Required: true},
				{Key: "absence_type", Label: "Type", Kind: types.FieldSelect, Options: opts(
					"vacation", "Vacation", "sick", "Sick leave", "personal", "Personal", "other", "Other")},
				{Key: "start_date", Label: "Start date", Kind: types.FieldDate, Required: true},
				{Key: "end_date", Label: "End date", Kind: types.FieldDate, Required: true},
				{Key: "reason", Label: "Reason", Kind: types.FieldTextarea},
				{Key: "status", Label: "Status", Kind: types.FieldSelect, Options: opts(
					"pending", "Pending", "approved", "Approved", "rejected", "Rejected")},
			},
			SearchFields: []string{"staff_name", "reason"},
			FilterField:  "status",
			ScopedDelete: true,
			Sort:         crud.SortBy{Field: "start_date", Desc: true},
		},
		{
			Name:    types.TableEmergencyContacts,
			Title:   "Emergency contacts",
			Columns: []string{"name", "role", "phone", "email", "is_primary", "notes", "created_at", "updated_at"},
			Fields: []types.FieldConfig{
				{Key: "name", Label: "Name", Kind: types.FieldText, Required: true},
				{Key: "role", Label: "Role", Kind: types.FieldText},
				{Key: "phone", Label: "Phone", Kind: types.FieldText, Required: true, Validate: phoneRule},
				{Key: "email", Label: "Email", Kind: types.FieldText, Validate: emailRule},
				{Key: "is_primary", Label: "Primary contact", Kind: types.FieldBoolean},
				{Key: "notes", Label: "Notes", Kind: types.FieldTextarea},
			},
			SearchFields: []string{"name", "role", "phone"},
			FilterField:  "role",
			Toggles:      []string{"is_primary"},
		},
	}
}
