package services

// Category keys shipped with the default catalog.
const (
	CategoryPhysical = "physical"
	CategoryVirtual  = "virtual"
	CategoryStorage  = "storage"
	CategoryDatabase = "database"
	CategoryWeb      = "web"
	CategoryBackup   = "backup"
)

// DefaultCategories is the display order and metadata of the shipped categories.
var DefaultCategories = []Category{
	{Key: CategoryPhysical, Label: "Fysiska servrar", Icon: "fas fa-server"},
	{Key: CategoryVirtual, Label: "Virtuella servrar", Icon: "fas fa-cloud"},
	{Key: CategoryStorage, Label: "Lagring", Icon: "fas fa-database"},
	{Key: CategoryDatabase, Label: "Databashotell", Icon: "fas fa-server"},
	{Key: CategoryWeb, Label: "Webbhotell", Icon: "fas fa-globe"},
	{Key: CategoryBackup, Label: "Beredskap", Icon: "fas fa-shield-alt"},
}

// DefaultServices is the shipped price list. Prices are yearly, in kronor.
var DefaultServices = []ServiceItem{
	// Physical servers
	{ID: "placement", Name: "Serverplacering", Description: "2 280 kr/U och år", UnitPrice: 2280, Unit: "U", Category: CategoryPhysical},
	{ID: "monitoring-license", Name: "Övervakning licens + infrastruktur", Description: "1 000 kr/server och år", UnitPrice: 1000, Unit: "server", Category: CategoryPhysical},
	{ID: "monitoring-action", Name: "Övervakning inkl. åtgärd", Description: "6 600 kr/server och år", UnitPrice: 6600, Unit: "server", Category: CategoryPhysical},
	{ID: "rack-service", Name: "Drifttjänst rackserver", Description: "19 800 kr/server och år", UnitPrice: 19800, Unit: "server", Category: CategoryPhysical},

	// Virtual servers
	{ID: "base-server", Name: "Server med drift och underhåll", Description: "(1 VCPU, 2 GB RAM, 60 GB lagring)\n9 650 kr/server/år", UnitPrice: 9650, Unit: "server", Category: CategoryVirtual},
	{ID: "extra-cpu", Name: "Extra processor (VCPU)", Description: "500 kr/st./år", UnitPrice: 500, Unit: "st", Category: CategoryVirtual},
	{ID: "extra-ram", Name: "Extra ramminne per GB", Description: "325 kr/GB/år", UnitPrice: 325, Unit: "GB", Category: CategoryVirtual},
	{ID: "extra-storage", Name: "Extra serverlagring per GB", Description: "125 kr/GB/år", UnitPrice: 125, Unit: "GB", Category: CategoryVirtual},

	// Storage
	{ID: "work-files", Name: "Fillagring arbetsmaterial (hemkatalog)", Description: "33 kr/GB och år", UnitPrice: 33, Unit: "GB", Category: CategoryStorage},
	{ID: "student-files", Name: "Fillagring studentmaterial", Description: "24 kr/GB och år", UnitPrice: 24, Unit: "GB", Category: CategoryStorage},
	{ID: "longterm", Name: "Långtidslagring", Description: "12 kr/GB och år", UnitPrice: 12, Unit: "GB", Category: CategoryStorage},
	{ID: "tape-backup", Name: "Backup på band", Description: "3,60 kr/GB och år", UnitPrice: 3.6, Unit: "GB", Category: CategoryStorage},

	// Database hosting
	{ID: "mssql", Name: "MSSQL inkl. 1 GB lagring", Description: "6 000 kr/databas och år", UnitPrice: 6000, Unit: "databas", Category: CategoryDatabase},
	{ID: "postgresql", Name: "PostgreSQL inkl. 1 GB lagring", Description: "4 000 kr/databas och år", UnitPrice: 4000, Unit: "databas", Category: CategoryDatabase},
	{ID: "mongodb", Name: "MongoDB inkl. 1 GB lagring", Description: "4 000 kr/databas och år", UnitPrice: 4000, Unit: "databas", Category: CategoryDatabase},
	{ID: "mariadb", Name: "MariaDB", Description: "4 000 kr/databas och år", UnitPrice: 4000, Unit: "databas", Category: CategoryDatabase},
	{ID: "db-extra-storage", Name: "Lagring utöver 1 GB", Description: "300 kr/GB och år", UnitPrice: 300, Unit: "GB", Category: CategoryDatabase},

	// Web hosting
	{ID: "web-hosting", Name: "IIS & Apache < 1GB", Description: "3 600 kr/sajt och år", UnitPrice: 3600, Unit: "sajt", Category: CategoryWeb},
	{ID: "sharepoint", Name: "SharePoint lagring > 10GB", Description: "300 kr/GB och år", UnitPrice: 300, Unit: "GB", Category: CategoryWeb},

	// Backup services
	{ID: "first-system", Name: "Beredskap 1:a systemet", Description: "30 000 kr/system och år", UnitPrice: 30000, Unit: "system", Category: CategoryBackup, MaxQuantity: intPtr(1)},
	{ID: "additional-systems", Name: "Beredskap ytterligare system", Description: "10 000 kr/system och år", UnitPrice: 10000, Unit: "system", Category: CategoryBackup},
}

// DefaultCatalog returns the shipped catalog. It panics if the static data
// above is ever edited into an invalid state.
func DefaultCatalog() *Catalog {
	return MustCatalog(DefaultServices, DefaultCategories)
}
