package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/shopspring/decimal"

	"counsellor/internal/config"
	"counsellor/internal/db"
	"counsellor/internal/model"
	"counsellor/internal/repository"
)

// seedUniversity mirrors the catalog record with literal-friendly types.
type seedUniversity struct {
	Name                string
	Country             string
	City                string
	Ranking             int
	TuitionMin          int64
	TuitionMax          int64
	Programs            []string
	AcceptanceRate      float64
	IELTSRequirement    float64
	GRERequirement      int
	TOEFLRequirement    int
	ApplicationDeadline string
	ImageURL            string
	Description         string
}

var universities = []seedUniversity{
	{
		Name:                "Massachusetts Institute of Technology (MIT)",
		Country:             "USA",
		City:                "Cambridge, MA",
		Ranking:             1,
		TuitionMin:          53000,
		TuitionMax:          58000,
		Programs:            []string{"Computer Science", "Engineering", "Business", "Physics", "Mathematics"},
		AcceptanceRate:      4.0,
		IELTSRequirement:    7.0,
		GRERequirement:      330,
		TOEFLRequirement:    100,
		ApplicationDeadline: "January 1",
		ImageURL:            "https://images.unsplash.com/photo-1564981797816-1043664bf78d?w=400",
		Description:         "World-leading research university known for science, engineering, and technology.",
	},
	{
		Name:                "Stanford University",
		Country:             "USA",
		City:                "Stanford, CA",
		Ranking:             3,
		TuitionMin:          54000,
		TuitionMax:          60000,
		Programs:            []string{"Computer Science", "Business", "Law", "Medicine", "Engineering"},
		AcceptanceRate:      4.3,
		IELTSRequirement:    7.0,
		GRERequirement:      330,
		TOEFLRequirement:    100,
		ApplicationDeadline: "January 5",
		ImageURL:            "https://images.unsplash.com/photo-1541625247028-8e14c89c6c08?w=400",
		Description:         "Elite research university in Silicon Valley with strong entrepreneurship culture.",
	},
	{
		Name:                "University of California, Berkeley",
		Country:             "USA",
		City:                "Berkeley, CA",
		Ranking:             15,
		TuitionMin:          43000,
		TuitionMax:          48000,
		Programs:            []string{"Computer Science", "Engineering", "Business", "Data Science", "Public Policy"},
		AcceptanceRate:      17.0,
		IELTSRequirement:    6.5,
		GRERequirement:      320,
		TOEFLRequirement:    90,
		ApplicationDeadline: "December 1",
		ImageURL:            "https://images.unsplash.com/photo-1607237138185-eedd9c632b0b?w=400",
		Description:         "Top public university known for engineering and computer science programs.",
	},
	{
		Name:                "University of Toronto",
		Country:             "Canada",
		City:                "Toronto, ON",
		Ranking:             25,
		TuitionMin:          32000,
		TuitionMax:          40000,
		Programs:            []string{"Computer Science", "Engineering", "Business", "Life Sciences", "Arts"},
		AcceptanceRate:      43.0,
		IELTSRequirement:    6.5,
		GRERequirement:      310,
		TOEFLRequirement:    89,
		ApplicationDeadline: "January 15",
		ImageURL:            "https://images.unsplash.com/photo-1569012871812-f38ee64cd54c?w=400",
		Description:         "Canada's top university with diverse programs and strong research output.",
	},
	{
		Name:                "Technical University of Munich (TUM)",
		Country:             "Germany",
		City:                "Munich",
		Ranking:             50,
		TuitionMin:          500,
		TuitionMax:          2000,
		Programs:            []string{"Engineering", "Computer Science", "Natural Sciences", "Management"},
		AcceptanceRate:      35.0,
		IELTSRequirement:    6.5,
		GRERequirement:      310,
		TOEFLRequirement:    88,
		ApplicationDeadline: "May 31",
		ImageURL:            "https://images.unsplash.com/photo-1590846406792-0adc7f938f1d?w=400",
		Description:         "Germany's top technical university with nearly free tuition for international students.",
	},
	{
		Name:                "Imperial College London",
		Country:             "UK",
		City:                "London",
		Ranking:             6,
		TuitionMin:          35000,
		TuitionMax:          45000,
		Programs:            []string{"Engineering", "Medicine", "Science", "Business", "Computing"},
		AcceptanceRate:      14.0,
		IELTSRequirement:    7.0,
		GRERequirement:      320,
		TOEFLRequirement:    100,
		ApplicationDeadline: "January 15",
		ImageURL:            "https://images.unsplash.com/photo-1526129318478-62ed807ebdf9?w=400",
		Description:         "World-class science and engineering university in central London.",
	},
	{
		Name:                "ETH Zurich",
		Country:             "Switzerland",
		City:                "Zurich",
		Ranking:             8,
		TuitionMin:          1000,
		TuitionMax:          2000,
		Programs:            []string{"Engineering", "Computer Science", "Natural Sciences", "Architecture"},
		AcceptanceRate:      27.0,
		IELTSRequirement:    7.0,
		GRERequirement:      320,
		TOEFLRequirement:    100,
		ApplicationDeadline: "December 15",
		ImageURL:            "https://images.unsplash.com/photo-1530122037265-a5f1f91d3b99?w=400",
		Description:         "Top European university known for science, tech, and low tuition fees.",
	},
	{
		Name:                "National University of Singapore (NUS)",
		Country:             "Singapore",
		City:                "Singapore",
		Ranking:             11,
		TuitionMin:          18000,
		TuitionMax:          25000,
		Programs:            []string{"Computing", "Business", "Engineering", "Law", "Medicine"},
		AcceptanceRate:      28.0,
		IELTSRequirement:    6.5,
		GRERequirement:      315,
		TOEFLRequirement:    92,
		ApplicationDeadline: "January 15",
		ImageURL:            "https://images.unsplash.com/photo-1565967511849-76a60a516170?w=400",
		Description:         "Asia's leading university with strong industry connections and research.",
	},
	{
		Name:                "University of Melbourne",
		Country:             "Australia",
		City:                "Melbourne",
		Ranking:             33,
		TuitionMin:          35000,
		TuitionMax:          45000,
		Programs:            []string{"Business", "Engineering", "Arts", "Science", "Medicine"},
		AcceptanceRate:      45.0,
		IELTSRequirement:    6.5,
		GRERequirement:      300,
		TOEFLRequirement:    79,
		ApplicationDeadline: "October 31",
		ImageURL:            "https://images.unsplash.com/photo-1514395462725-fb4566210144?w=400",
		Description:         "Australia's top university with excellent student life and diverse programs.",
	},
	{
		Name:                "University of British Columbia",
		Country:             "Canada",
		City:                "Vancouver, BC",
		Ranking:             35,
		TuitionMin:          28000,
		TuitionMax:          38000,
		Programs:            []string{"Computer Science", "Engineering", "Business", "Forestry", "Sciences"},
		AcceptanceRate:      52.0,
		IELTSRequirement:    6.5,
		GRERequirement:      300,
		TOEFLRequirement:    90,
		ApplicationDeadline: "January 15",
		ImageURL:            "https://images.unsplash.com/photo-1580777361964-27e9cdd2f838?w=400",
		Description:         "Beautiful campus university with strong programs and high acceptance rate.",
	},
	{
		Name:                "Georgia Institute of Technology",
		Country:             "USA",
		City:                "Atlanta, GA",
		Ranking:             45,
		TuitionMin:          33000,
		TuitionMax:          38000,
		Programs:            []string{"Computer Science", "Engineering", "Business", "Sciences"},
		AcceptanceRate:      21.0,
		IELTSRequirement:    7.0,
		GRERequirement:      320,
		TOEFLRequirement:    95,
		ApplicationDeadline: "January 1",
		ImageURL:            "https://images.unsplash.com/photo-1562774053-701939374585?w=400",
		Description:         "Top-tier engineering school with strong industry partnerships.",
	},
	{
		Name:                "University of Texas at Austin",
		Country:             "USA",
		City:                "Austin, TX",
		Ranking:             40,
		TuitionMin:          38000,
		TuitionMax:          42000,
		Programs:            []string{"Computer Science", "Engineering", "Business", "Law", "Liberal Arts"},
		AcceptanceRate:      32.0,
		IELTSRequirement:    6.5,
		GRERequirement:      315,
		TOEFLRequirement:    79,
		ApplicationDeadline: "December 1",
		ImageURL:            "https://images.unsplash.com/photo-1541339907198-e08756dedf3f?w=400",
		Description:         "Major research university in the tech hub of Austin.",
	},
	{
		Name:                "University of Waterloo",
		Country:             "Canada",
		City:                "Waterloo, ON",
		Ranking:             112,
		TuitionMin:          25000,
		TuitionMax:          35000,
		Programs:            []string{"Computer Science", "Engineering", "Mathematics", "Co-op Programs"},
		AcceptanceRate:      55.0,
		IELTSRequirement:    6.5,
		GRERequirement:      300,
		TOEFLRequirement:    90,
		ApplicationDeadline: "February 1",
		ImageURL:            "https://images.unsplash.com/photo-1498243691581-b145c3f54a5a?w=400",
		Description:         "Known for co-op programs and strong tech industry connections.",
	},
	{
		Name:                "Arizona State University",
		Country:             "USA",
		City:                "Tempe, AZ",
		Ranking:             185,
		TuitionMin:          28000,
		TuitionMax:          32000,
		Programs:            []string{"Engineering", "Business", "Computer Science", "Design", "Journalism"},
		AcceptanceRate:      88.0,
		IELTSRequirement:    6.0,
		GRERequirement:      290,
		TOEFLRequirement:    61,
		ApplicationDeadline: "Rolling",
		ImageURL:            "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=400",
		Description:         "Large public university with high acceptance and diverse programs.",
	},
	{
		Name:                "RWTH Aachen University",
		Country:             "Germany",
		City:                "Aachen",
		Ranking:             90,
		TuitionMin:          300,
		TuitionMax:          1000,
		Programs:            []string{"Engineering", "Computer Science", "Natural Sciences", "Medicine"},
		AcceptanceRate:      40.0,
		IELTSRequirement:    6.5,
		GRERequirement:      300,
		TOEFLRequirement:    80,
		ApplicationDeadline: "March 1",
		ImageURL:            "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=400",
		Description:         "Top German technical university with virtually free tuition.",
	},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.University{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	universityRepo := repository.NewUniversityRepository(gormDB)
	ctx := context.Background()

	log.Println("Seeding universities into database...")
	for _, seed := range universities {
		programs, err := json.Marshal(seed.Programs)
		if err != nil {
			log.Fatalf("Failed to encode programs for %s: %v", seed.Name, err)
		}

		university := &model.University{
			Name:                seed.Name,
			Country:             seed.Country,
			City:                seed.City,
			Ranking:             seed.Ranking,
			TuitionMin:          decimal.NewFromInt(seed.TuitionMin),
			TuitionMax:          decimal.NewFromInt(seed.TuitionMax),
			Programs:            string(programs),
			AcceptanceRate:      seed.AcceptanceRate,
			IELTSRequirement:    seed.IELTSRequirement,
			GRERequirement:      seed.GRERequirement,
			TOEFLRequirement:    seed.TOEFLRequirement,
			ApplicationDeadline: seed.ApplicationDeadline,
			ImageURL:            seed.ImageURL,
			Description:         seed.Description,
		}
		if err := universityRepo.Upsert(ctx, university); err != nil {
			log.Fatalf("Failed to seed %s: %v", seed.Name, err)
		}
	}

	log.Printf("Seed completed successfully! %d universities processed", len(universities))
}
