package pages

import "github.com/mesh-intelligence/frontdesk/pkg/types"

// Samples returns a few demonstration records per built-in page, stamped
// with the scope's hotel.
func Samples(scope types.Scope) map[string][]types.Values {
	out := make(map[string][]types.Values, len(samples))
	for table, recs := range samples {
		stamped := make([]types.Values, len(recs))
		for i, r := range recs {
			stamped[i] = scope.Stamp(r)
		}
		out[table] = stamped
	}
	return out
}

var samples = map[string][]types.Values{
	types.TableAmenities: {
		{"name": "Rooftop pool", "category": "pool", "opening_hours": "07:00-22:00", "capacity": 40.0, "is_active": true, "is_featured": true},
		{"name": "Thermal spa", "category": "spa", "opening_hours": "10:00-20:00", "capacity": 12.0, "is_active": true, "is_featured": false},
		{"name": "Fitness studio", "category": "fitness", "opening_hours": "00:00-24:00", "capacity": 15.0, "is_active": true, "is_featured": false},
	},
	types.TableAnnouncements: {
		{"title": "Pool maintenance", "content": "The rooftop pool closes at 18:00 on Friday.", "priority": "high", "is_active": true},
		{"title": "Wine tasting", "content": "Join us in the lobby bar at 19:00.", "priority": "normal", "is_active": true},
	},
	types.TableStaff: {
		{"first_name": "Ana", "last_name": "Ruiz", "email": "ana.ruiz@hotel.example", "department": "front_office", "position": "Night manager", "is_active": true},
		{"first_name": "Ben", "last_name": "Okafor", "email": "ben.okafor@hotel.example", "department": "housekeeping", "position": "Supervisor", "is_active": true},
	},
	types.TableTasks: {
		{"title": "Replace lamp", "priority": "medium", "status": "pending", "room_number": "214"},
		{"title": "Deep clean suite", "priority": "high", "status": "in_progress", "assigned_to": "Ben Okafor", "room_number": "501"},
	},
	types.TableRestaurants: {
		{"name": "Harbour Grill", "cuisine_type": "Seafood", "location": "Ground floor", "price_range": "$$$", "capacity": 60.0, "is_recommended": true, "is_active": true},
	},
	types.TableShopOrders: {
		{"guest_name": "Kim Lee", "room_number": "308", "item_name": "Bathrobe", "quantity": 1.0, "total_amount": 45.0, "status": "pending"},
	},
	types.TableAbsenceRequests: {
		{"staff_name": "Ana Ruiz", "absence_type": "vacation", "start_date": "2026-12-20", "end_date": "2026-12-27", "status": "pending"},
	},
	types.TableEmergencyContacts: {
		{"name": "City fire department", "role": "fire", "phone": "+1 555 0100", "is_primary": true},
		{"name": "Dr. Patel", "role": "doctor", "phone": "+1 555 0199", "email": "patel@clinic.example", "is_primary": false},
	},
}
