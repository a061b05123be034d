package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"marketplace/internal/database"
	"marketplace/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "marketplace.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM chat_messages")
	db.Exec("DELETE FROM conversations")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM review_helpful_votes")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM order_status_entries")
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM businesses")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@marketplace.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@marketplace.local / admin123")

	customers := []domain.User{}
	for i, email := range []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
		c := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleCustomer,
			Name:         fmt.Sprintf("Customer %d", i+1),
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+67),
		}
		db.Create(&c)
		customers = append(customers, c)
	}

	owners := []domain.User{}
	for i, email := range []string{"bakery@market.kz", "sushi@market.kz"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
		o := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleBusinessOwner,
			Name:         fmt.Sprintf("Owner %d", i+1),
		}
		db.Create(&o)
		owners = append(owners, o)
	}

	// ================== BUSINESSES ==================
	log.Println("Creating businesses...")

	bakery := domain.Business{
		OwnerID:      owners[0].ID,
		Name:         "Corner Bakery",
		Description:  "Fresh bread and pastry, same-day delivery",
		Category:     "bakery",
		Address:      "12 Hill St",
		City:         "Almaty",
		Status:       domain.BusinessApproved,
		RatingCounts: domain.RatingCounts{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	db.Create(&bakery)

	sushi := domain.Business{
		OwnerID:      owners[1].ID,
		Name:         "Tokyo Bay Sushi",
		Description:  "Rolls and sets",
		Category:     "restaurant",
		Address:      "4 Abay Ave",
		City:         "Almaty",
		Status:       domain.BusinessPending,
		RatingCounts: domain.RatingCounts{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	db.Create(&sushi)

	// ================== PRODUCTS ==================
	log.Println("Creating products...")

	products := []domain.Product{
		{BusinessID: bakery.ID, Name: "Sourdough loaf", Price: 4.50, IsAvailable: true},
		{BusinessID: bakery.ID, Name: "Croissant", Price: 2.25, IsAvailable: true},
		{BusinessID: bakery.ID, Name: "Cinnamon roll", Price: 3.00, IsAvailable: true},
		{BusinessID: sushi.ID, Name: "Philadelphia roll", Price: 11.90, IsAvailable: true},
	}
	for i := range products {
		db.Create(&products[i])
	}

	// ================== ORDERS ==================
	log.Println("Creating a delivered order with full history...")

	placed := time.Now().UTC().Add(-48 * time.Hour)
	ord := domain.Order{
		Reference:       uuid.NewString(),
		CustomerID:      customers[0].ID,
		BusinessID:      bakery.ID,
		Status:          domain.OrderDelivered,
		TotalPrice:      9.00,
		DeliveryAddress: "77 Green St, apt 4",
		CreatedAt:       placed,
		UpdatedAt:       placed.Add(80 * time.Minute),
		Items: []domain.OrderItem{
			{ProductID: products[0].ID, Name: products[0].Name, Quantity: 2, UnitPrice: 4.50},
		},
	}
	db.Create(&ord)

	for i, st := range []domain.OrderStatus{
		domain.OrderPreparing,
		domain.OrderOutForDelivery,
		domain.OrderOnTheWay,
		domain.OrderDelivered,
	} {
		db.Create(&domain.OrderStatusEntry{
			OrderID:   ord.ID,
			Status:    st,
			CreatedAt: placed.Add(time.Duration(i*20) * time.Minute),
		})
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")

	reviews := []domain.Review{
		{BusinessID: bakery.ID, UserID: customers[0].ID, OrderID: &ord.ID, Rating: 5, Comment: "Best sourdough in town"},
		{BusinessID: bakery.ID, UserID: customers[1].ID, Rating: 4, Comment: "Good, delivery was a bit slow"},
		{BusinessID: bakery.ID, UserID: customers[2].ID, Rating: 3, Comment: "Average"},
	}
	for i := range reviews {
		db.Create(&reviews[i])
	}

	// Rating summary matching the seeded review set
	db.Model(&domain.Business{}).Where("id = ?", bakery.ID).Updates(map[string]any{
		"rating":        4.0,
		"review_count":  3,
		"rating_counts": domain.RatingCounts{1: 0, 2: 0, 3: 1, 4: 1, 5: 1},
	})

	log.Println("Seed completed")
}
