package database

import (
	"log"
	"math/rand"
	"time"

	"movie_booking/helper"
	"movie_booking/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCities = []string{
	"Hyderabad", "Bangalore", "Chennai", "Mumbai", "Delhi", "Pune", "Kolkata",
	"Ahmedabad", "Jaipur", "Kochi", "Vizag", "Vijayawada", "Guntur",
}

var seedTheatreNames = []string{"PVR Cinemas", "INOX", "Cinepolis"}

var seedTimeSlots = []string{"10:00", "13:00", "16:00", "19:00", "22:00"}

var seedMovies = []model.Movie{
	{Title: "Interstellar", Genre: "Sci-Fi", Duration: 169, Language: "English"},
	{Title: "RRR", Genre: "Action", Duration: 187, Language: "Telugu"},
	{Title: "3 Idiots", Genre: "Comedy", Duration: 170, Language: "Hindi"},
	{Title: "Inception", Genre: "Sci-Fi", Duration: 148, Language: "English"},
	{Title: "Baahubali 2", Genre: "Action", Duration: 167, Language: "Telugu"},
}

// SeedData loads demo catalog data and a rolling show schedule. It is a
// no-op once shows exist so restarts don't duplicate inventory.
func SeedData(db *gorm.DB) {
	seedUsers(db)

	var showCount int64
	db.Model(&model.Show{}).Count(&showCount)
	if showCount > 0 {
		return
	}

	for _, name := range seedCities {
		city := model.City{Name: name}
		if err := db.Where(model.City{Name: name}).FirstOrCreate(&city).Error; err != nil {
			log.Println("failed to seed city:", name, "error:", err)
		}
	}

	sizes := []string{model.TheatreSmall, model.TheatreMedium, model.TheatreLarge}
	theatres := make([]model.Theatre, 0, len(seedCities)*len(seedTheatreNames))
	for _, city := range seedCities {
		for _, name := range seedTheatreNames {
			theatres = append(theatres, model.Theatre{
				Name:      name,
				City:      city,
				Location:  city + " Center",
				SizeClass: sizes[rand.Intn(len(sizes))],
			})
		}
	}
	if err := db.Create(&theatres).Error; err != nil {
		log.Println("failed to seed theatres:", err)
		return
	}

	movies := make([]model.Movie, len(seedMovies))
	copy(movies, seedMovies)
	for i := range movies {
		movies[i].Slug = slug.Make(movies[i].Title)
		if err := db.Where(model.Movie{Slug: movies[i].Slug}).FirstOrCreate(&movies[i]).Error; err != nil {
			log.Println("failed to seed movie:", movies[i].Title, "error:", err)
		}
	}

	theatresByCity := make(map[string][]model.Theatre)
	for _, t := range theatres {
		theatresByCity[t.City] = append(theatresByCity[t.City], t)
	}

	basePrices := []float64{150, 200, 250}
	today := time.Now()
	seeded := 0
	for day := 0; day < 20; day++ {
		date := today.AddDate(0, 0, day).Format("2006-01-02")
		for _, city := range seedCities {
			cityTheatres := theatresByCity[city]
			if len(cityTheatres) == 0 {
				continue
			}
			for _, movie := range movies {
				numShows := 1 + rand.Intn(2)
				for k := 0; k < numShows; k++ {
					theatre := cityTheatres[rand.Intn(len(cityTheatres))]
					show := model.Show{
						MovieId:   movie.ID,
						TheatreId: theatre.ID,
						Date:      date,
						Time:      seedTimeSlots[rand.Intn(len(seedTimeSlots))],
						BasePrice: basePrices[rand.Intn(len(basePrices))],
					}
					err := db.Transaction(func(tx *gorm.DB) error {
						if err := tx.Create(&show).Error; err != nil {
							return err
						}
						return helper.CreateShowSeats(tx, show.ID, theatre.SizeClass)
					})
					if err != nil {
						log.Println("failed to seed show:", err)
						continue
					}
					seeded++
				}
			}
		}
	}
	log.Printf("Seeded %d shows with seat inventory", seeded)
}

func seedUsers(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("demo1234"), 10)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	users := []model.User{
		{Name: "Demo User", Email: "demo@moviebooking.local", Password: string(bytes), Role: "USER"},
		{Name: "Admin", Email: "admin@moviebooking.local", Password: string(bytes), Role: "ADMIN"},
	}
	for _, user := range users {
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Email, "error:", err)
		}
	}
}
