package types

// Table names of the built-in console pages.
const (
	TableAmenities         = "amenities"
	TableAnnouncements     = "announcements"
	TableStaff             = "staff"
	TableTasks             = "tasks"
	TableRestaurants       = "restaurants"
	TableShopOrders        = "shop_orders"
	TableAbsenceRequests   = "absence_requests"
	TableEmergencyContacts = "emergency_contacts"
)

// StandardTableNames lists the built-in tables for enumeration. A backend
// attached without an explicit table list serves exactly these.
var StandardTableNames = []string{
	TableAmenities,
	TableAnnouncements,
	TableStaff,
	TableTasks,
	TableRestaurants,
	TableShopOrders,
	TableAbsenceRequests,
	TableEmergencyContacts,
}
