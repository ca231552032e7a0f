package main

import settingsapp "github.com/repairdesk/backend/internal/application/settings"

var sampleTechnicians = []settingsapp.TechnicianRequest{
	{Name: "Abul Kalam", Email: "abul.kalam@electronics.com", Phone: "+880-1712-345678", Specialization: []string{"LED TV", "Smart TV", "Display Panels"}, Experience: 8},
	{Name: "Mohammad Rahim", Email: "mohammad.rahim@electronics.com", Phone: "+880-1823-456789", Specialization: []string{"LCD TV", "Power Supply", "Motherboards"}, Experience: 6},
	{Name: "Abdur Rahman", Email: "abdur.rahman@electronics.com", Phone: "+880-1934-567890", Specialization: []string{"Plasma TV", "Audio Systems", "Remote Controls"}, Experience: 10},
	{Name: "Nazmul Hasan", Email: "nazmul.hasan@electronics.com", Phone: "+880-1645-678901", Specialization: []string{"Smart TV", "LED TV", "Display Panels"}, Experience: 4},
	{Name: "Mahbubur Rahman", Email: "mahbubur.rahman@electronics.com", Phone: "+880-1756-789012", Specialization: []string{"LCD TV", "Plasma TV", "Power Supply"}, Experience: 12},
	{Name: "Faridul Islam", Email: "faridul.islam@electronics.com", Phone: "+880-1867-890123", Specialization: []string{"Audio Systems", "Smart TV", "Motherboards"}, Experience: 7},
	{Name: "Saiful Islam", Email: "saiful.islam@electronics.com", Phone: "+880-1978-901234", Specialization: []string{"LED TV", "Remote Controls", "Display Panels"}, Experience: 5},
	{Name: "Habibur Rahman", Email: "habibur.rahman@electronics.com", Phone: "+880-1589-012345", Specialization: []string{"Power Supply", "Motherboards", "LCD TV"}, Experience: 9},
	{Name: "Ashraful Alam", Email: "ashraful.alam@electronics.com", Phone: "+880-1690-123456", Specialization: []string{"Smart TV", "Plasma TV", "Audio Systems"}, Experience: 6},
	{Name: "Tanvir Ahmed", Email: "tanvir.ahmed@electronics.com", Phone: "+880-1701-234567", Specialization: []string{"LED TV", "Display Panels", "Remote Controls"}, Experience: 3},
}

var sampleBrands = []settingsapp.ReferenceRequest{
	{Name: "Samsung"},
	{Name: "Apple"},
	{Name: "LG"},
	{Name: "Sony"},
	{Name: "Panasonic"},
	{Name: "TCL"},
	{Name: "Hisense"},
	{Name: "Xiaomi"},
	{Name: "Walton"},
}

var sampleProblemCategories = []settingsapp.ReferenceRequest{
	{Name: "No Power", Description: "Set does not turn on or standby light is off"},
	{Name: "No Picture", Description: "Sound works but the screen stays dark"},
	{Name: "No Sound", Description: "Picture works but speakers are silent"},
	{Name: "Screen Damage", Description: "Cracked panel, lines or dead pixels"},
	{Name: "Connectivity", Description: "HDMI, Wi-Fi or tuner input problems"},
	{Name: "Display Issue"},
	{Name: "Battery Problem", Description: "Remote or portable set battery faults"},
	{Name: "Overheating"},
}
