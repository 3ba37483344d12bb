package catalog

import (
	"context"
	"math"
	"math/rand/v2"

	"gorm.io/gorm"
)

type seedCategory struct {
	Name        string
	Description string
	Products    []seedProduct
}

type seedProduct struct {
	Name        string
	Description string
}

var seedCatalog = []seedCategory{
	{"Graphics Cards", "High-performance GPUs for gaming", []seedProduct{
		{"RTX 4090 24GB", "Flagship GPU with advanced ray tracing"},
		{"RTX 4080 16GB", "High-end gaming GPU for 4K"},
		{"RTX 4070 Ti 12GB", "Excellent performance/value ratio"},
		{"RTX 4070 12GB", "Mid-range 1440p gaming"},
		{"RTX 4060 Ti 8GB", "4K capable entry-level GPU"},
		{"RX 7900 XTX 24GB", "Ultra-high performance RDNA 3"},
		{"RX 7900 XT 20GB", "Premium RDNA 3 gaming GPU"},
		{"RX 7800 XT 16GB", "Solid 1440p high-end GPU"},
		{"RX 7700 XT 12GB", "Great 1440p midrange performer"},
		{"RX 7600 XT 16GB", "Budget-friendly RDNA 3"},
		{"Arc A770 16GB", "Intel Arc flagship gaming GPU"},
		{"RTX 4070 Super 12GB", "Updated RTX 4070 Ti with better performance"},
		{"RTX 4060 8GB", "Excellent 1080p and 1440p gaming"},
		{"RX 7600 12GB", "Budget-friendly 1080p gaming"},
		{"RTX 3060 Ti 8GB", "High-end previous generation"},
		{"RTX 4090 Founders Edition", "Official NVIDIA design"},
		{"EVGA RTX 4080 FTW3", "Overclocked RTX 4080"},
		{"MSI RTX 4070 Gaming", "Premium RTX 4070 variant"},
		{"ASUS RTX 4080 ROG Strix", "Top-tier ASUS ROG design"},
		{"Gigabyte RX 7900 XT AORUS", "Premium RX 7900 XT variant"},
	}},
	{"Processors", "Gaming CPUs and processors", []seedProduct{
		{"Intel Core i9-13900KS", "Intel flagship with highest performance"},
		{"Intel Core i9-13900K", "Top-tier Intel gaming CPU"},
		{"Intel Core i7-13700K", "Excellent gaming and productivity"},
		{"Intel Core i5-13600K", "Great entry-level high-end"},
		{"Intel Core i7-13700", "High-end non-K variant"},
		{"AMD Ryzen 9 7950X", "AMD flagship processor"},
		{"AMD Ryzen 9 7950X3D", "AMD flagship with 3D V-Cache"},
		{"AMD Ryzen 7 7700X", "High-end gaming and productivity"},
		{"AMD Ryzen 7 7700", "Mid-range non-X variant"},
		{"AMD Ryzen 5 7600X", "Entry-level high-end"},
		{"Intel Core i9-12900K", "Previous gen Intel flagship"},
		{"AMD Ryzen 9 5950X", "AMD Ryzen previous gen flagship"},
		{"Intel Core i7-12700K", "Previous gen Intel high-end"},
		{"Intel Core i5-12600K", "Previous gen Intel mid-range"},
		{"AMD Ryzen 7 5800X3D", "Previous gen with 3D V-Cache"},
		{"Intel Core Ultra 9 265K", "Latest Intel Core Ultra"},
		{"AMD Ryzen 9 9950X", "Upcoming AMD Ryzen flagship"},
		{"Intel Core i9-14900K", "Latest Intel 14th generation"},
		{"AMD Ryzen 7 9700X", "Latest AMD Ryzen 9000 series"},
		{"Intel Core i7-13700KF", "Previous gen flagship"},
	}},
	{"Motherboards", "Gaming motherboards and chipsets", []seedProduct{
		{"ASUS ROG MAXIMUS Z790 HERO", "Premium Z790 gaming motherboard"},
		{"MSI MPG Z790 EDGE WIFI", "High-end Z790 with WiFi"},
		{"Gigabyte Z790 AORUS Master", "Flagship Z790 for enthusiasts"},
		{"ASRock Z790 Steel Legend", "Solid Z790 entry-level"},
		{"ASUS Pro WS Z790-SAGE", "Professional Z790 workstation"},
		{"ASUS ROG CROSSHAIR X870-E", "Top-tier X870E gaming board"},
		{"MSI MPG B850 EDGE WIFI", "Premium X870 gaming board"},
		{"Gigabyte B850E AORUS Master", "Flagship X870E enthusiast board"},
		{"ASRock X870E Steel Legend", "High-end X870E with premium features"},
		{"ASUS ProArt X870-CREATOR", "Professional X870E workstation"},
		{"ASUS ROG STRIX Z690-E", "High-end Z690 gaming motherboard"},
		{"MSI MPG Z690 CARBON WIFI", "Premium Z690 with WiFi"},
		{"Gigabyte Z690 AORUS Master", "Flagship Z690 for gaming"},
		{"ASRock Z690 Steel Legend", "Solid Z690 mid-range"},
		{"ASUS TUF Z690 PRO", "Gaming-focused Z690 board"},
		{"ASUS ROG STRIX X570-E", "High-end X570 gaming board"},
		{"MSI MPG X570S EDGE WIFI", "Premium X570 with WiFi"},
		{"Gigabyte X570 AORUS Master", "Flagship X570 enthusiast board"},
		{"ASRock X570 Taichi", "Enthusiast X570 alternative"},
		{"ASUS Pro WS X570", "Professional X570 workstation"},
	}},
	{"Gaming Peripherals", "Mice, keyboards, headsets, and controllers", []seedProduct{
		{"Corsair K95 Platinum Mechanical Keyboard", "Mechanical gaming keyboard with macro keys"},
		{"Logitech G Pro X Mechanical Keyboard", "Professional esports keyboard"},
		{"SteelSeries Apex Pro Keyboard", "Mechanical keyboard with OLED display"},
		{"Razer BlackWidow V4 Keyboard", "RGB mechanical gaming keyboard"},
		{"ASUS ROG Strix Scope II Keyboard", "Premium ROG gaming keyboard"},
		{"Logitech G Pro X Superlight 2 Mouse", "Ultra-lightweight wireless gaming mouse"},
		{"Corsair M65 Elite RGB Mouse", "High-performance RGB gaming mouse"},
		{"SteelSeries Rival 650 Mouse", "Wireless gaming mouse for FPS"},
		{"Razer DeathAdder V3 Mouse", "Premium ergonomic gaming mouse"},
		{"ASUS ROG Keris Wireless Mouse", "Lightweight wireless gaming mouse"},
		{"Corsair HS80 RGB Wireless Headset", "Wireless gaming headset with spatial audio"},
		{"SteelSeries Arctis Nova 7 Headset", "Wireless headset with excellent sound"},
		{"Logitech G Pro X 2 Headset", "Professional gaming headset"},
		{"Razer Kraken V4 Headset", "RGB gaming headset with mic"},
		{"ASUS ROG Delta S Headset", "Premium ROG gaming headset"},
		{"Xbox Wireless Controller", "Wireless gaming controller for PC"},
		{"PlayStation 5 DualSense Controller", "PlayStation gaming controller"},
		{"Corsair Scimitar Pro RGB", "Ergonomic MOBA gaming mouse"},
		{"Razer Naga Pro Mouse", "Professional MOBA gaming mouse"},
		{"SteelSeries GameDAC", "Gaming audio amplifier"},
	}},
	{"Monitors", "Gaming monitors and displays", []seedProduct{
		{"ASUS ROG Swift PG27UQ 4K 144Hz", "4K gaming monitor with 144Hz refresh rate"},
		{"LG UltraGear 27GP850 QHD 180Hz", "Fast QHD esports monitor"},
		{"Corsair Xeneon 32UHD165 4K 165Hz", "Premium 4K gaming display"},
		{"Gigabyte M34WQ OLED Ultrawide", "Ultrawide OLED gaming monitor"},
		{"MSI MAG 323URF 4K 160Hz", "4K high refresh gaming display"},
		{"Samsung G9 Odyssey 5120x1440 240Hz", "Extreme ultrawide curved gaming monitor"},
		{"LG UltraGear OLED 27GP950 QHD 240Hz", "OLED gaming monitor with 240Hz"},
		{"BenQ PD2705U 4K 60Hz Professional", "Professional 4K color-accurate display"},
		{"ASUS ProArt PA327CV 4K IPS", "Premium professional monitor"},
		{"Acer Predator X27 4K 144Hz", "4K gaming monitor"},
		{"Corsair Xeneon 27QHD165 QHD 165Hz", "QHD fast gaming monitor"},
		{"LG 27UP550 4K 60Hz", "4K professional display"},
		{"Asus VP28UQG 4K 60Hz FreeSync", "Affordable 4K gaming display"},
		{`MSI Optix MPG341CQ 34" Ultrawide`, "Ultrawide curved gaming monitor"},
		{"Gigabyte M32U 4K 144Hz", "4K gaming with high refresh"},
		{`Dell S3722DGM 37" Ultrawide`, "Extreme ultrawide gaming display"},
		{`AOC AG493UCG 49" Ultrawide`, "Massive ultrawide curved display"},
		{`LG 34UP550 34" Ultrawide 5K`, "5K ultrawide display"},
		{`ASUS PA247CV 24" Professional`, "Professional color-accurate monitor"},
		{`BenQ EW2480 24" Eye Care`, "Budget-friendly eye-care monitor"},
	}},
}

type SeedResult struct {
	Categories []Category
	Products   []Product
}

// Seed replaces every category and product with the built-in catalog. Prices are drawn from
// [10, 510) using rng; pass a seeded source for reproducible prices.
func Seed(ctx context.Context, db *gorm.DB, rng *rand.Rand) (*SeedResult, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	res := &SeedResult{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Product{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Category{}).Error; err != nil {
			return err
		}

		for _, sc := range seedCatalog {
			cat := Category{Name: sc.Name, Description: sc.Description}
			if err := tx.Create(&cat).Error; err != nil {
				return err
			}
			res.Categories = append(res.Categories, cat)

			products := make([]Product, 0, len(sc.Products))
			for _, sp := range sc.Products {
				products = append(products, Product{
					Name:        sp.Name,
					Description: sp.Description,
					Price:       math.Round((rng.Float64()*500+10)*100) / 100,
					CategoryID:  cat.ID,
				})
			}
			if err := tx.Create(&products).Error; err != nil {
				return err
			}
			res.Products = append(res.Products, products...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
