package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/client"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/logging"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

var alumni = []struct {
	first, last, email, course string
	year                       int
}{
	{"Ananya", "Sen", "ananya.sen@example.com", "B.Tech CSE", 2018},
	{"Rahul", "Das", "rahul.das@example.com", "B.Tech ECE", 2016},
	{"Priya", "Ghosh", "priya.ghosh@example.com", "MBA", 2020},
	{"Arjun", "Roy", "arjun.roy@example.com", "BCA", 2019},
	{"Meera", "Bose", "meera.bose@example.com", "B.Tech CSE", 2021},
}

func deadline(days int) *time.Time {
	t := time.Now().AddDate(0, 0, days).UTC().Truncate(24 * time.Hour)
	return &t
}

var posts = []client.NewPost{
	{Content: "Ten years since we graduated. Who's coming to the reunion?"},
	{Content: "Finally shipped the project I've been working on for a year!"},
	{
		Content:  "My team is hiring backend engineers, referrals welcome.",
		PostType: model.PostJob,
		JobDetails: &model.JobDetails{
			Title:    "Backend Engineer",
			Company:  "Acme Systems",
			Location: "Kolkata",
			Type:     "full-time",
			Deadline: deadline(30),
		},
	},
	{
		Content:  "Join us for the annual alumni meet on campus.",
		PostType: model.PostEvent,
		EventDetails: &model.EventDetails{
			Name:     "Alumni Meet",
			Date:     deadline(45),
			Location: "Main Auditorium",
		},
	},
	{
		Content:  "Let's help the department build a new robotics lab.",
		PostType: model.PostDonation,
		DonationDetails: &model.DonationDetails{
			Title:   "Robotics Lab Fund",
			Goal:    500000,
			Purpose: "Equipment for final-year projects",
		},
	},
	{Content: "Any tips for someone moving into product management?"},
}

var comments = []string{
	"Congratulations!",
	"Count me in.",
	"Shared this with my network.",
	"Great initiative, happy to contribute.",
	"Would love to hear more about this.",
	"Miss those campus days.",
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "AlumniConnect server URL")
	password := flag.String("password", "Alumni@123", "password for seeded accounts")
	adminEmail := flag.String("admin-email", "", "admin email for seeding announcements and jobs (optional)")
	adminPassword := flag.String("admin-password", "", "admin password")
	flag.Parse()

	logger, err := logging.New("info", "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	logger.Info("seeding", zap.String("url", *baseURL))

	var clients []*client.Client
	for _, a := range alumni {
		c, err := signIn(ctx, *baseURL, client.Registration{
			FirstName:      a.first,
			LastName:       a.last,
			Email:          a.email,
			Password:       *password,
			GraduationYear: a.year,
			Course:         a.course,
		})
		if err != nil {
			logger.Fatal("sign in alumnus", zap.String("email", a.email), zap.Error(err))
		}
		clients = append(clients, c)
		logger.Info("✓ alumnus ready", zap.String("email", a.email))
	}

	var postIDs []int64
	for _, p := range posts {
		idx := rand.Intn(len(clients))
		post, err := clients[idx].CreatePost(ctx, p)
		if err != nil {
			logger.Warn("✗ create post", zap.Error(err))
			continue
		}
		postIDs = append(postIDs, post.ID)
		logger.Info("✓ posted", zap.Int64("post_id", post.ID), zap.String("type", string(post.Type)), zap.String("by", alumni[idx].email))
		time.Sleep(50 * time.Millisecond)
	}

	likes, saves, commented := 0, 0, 0
	for _, postID := range postIDs {
		for i, c := range clients {
			if rand.Float32() < 0.5 {
				if liked, _, err := c.Like(ctx, postID); err == nil && liked {
					likes++
				}
			}
			if rand.Float32() < 0.2 {
				if saved, err := c.Save(ctx, postID); err == nil && saved {
					saves++
				}
			}
			if rand.Float32() < 0.3 {
				if _, err := c.Comment(ctx, postID, comments[rand.Intn(len(comments))]); err != nil {
					logger.Warn("✗ comment", zap.Int64("post_id", postID), zap.String("by", alumni[i].email), zap.Error(err))
					continue
				}
				commented++
			}
		}
	}
	logger.Info("✓ interactions", zap.Int("likes", likes), zap.Int("saves", saves), zap.Int("comments", commented))

	if *adminEmail != "" {
		if err := seedContent(ctx, *baseURL, *adminEmail, *adminPassword); err != nil {
			logger.Warn("✗ admin content", zap.Error(err))
		} else {
			logger.Info("✓ admin content published")
		}
	}

	fmt.Println("\n=== Seed Complete ===")
	fmt.Printf("Alumni:   %d\n", len(clients))
	fmt.Printf("Posts:    %d\n", len(postIDs))
	fmt.Printf("Password: %s\n", *password)
	fmt.Println("\nAPI at:", *baseURL)
}

// signIn registers the alumnus unless the email is taken, then logs in.
func signIn(ctx context.Context, baseURL string, reg client.Registration) (*client.Client, error) {
	c := client.New(baseURL)
	if _, err := c.Register(ctx, reg); err != nil && client.StatusOf(err) != http.StatusConflict {
		return nil, fmt.Errorf("register: %w", err)
	}
	if _, err := c.Login(ctx, reg.Email, reg.Password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return c, nil
}

func seedContent(ctx context.Context, baseURL, email, password string) error {
	c := client.New(baseURL)
	if _, err := c.LoginAdmin(ctx, email, password); err != nil {
		return fmt.Errorf("admin login: %w", err)
	}
	items := []struct {
		kind string
		item any
	}{
		{"announcements", model.Announcement{Title: "Alumni portal is live", Body: "Update your profile and reconnect with your batch."}},
		{"events", model.Event{Name: "Homecoming", Date: deadline(60), Location: "Campus Grounds"}},
		{"jobs", model.Job{Title: "Data Analyst", Company: "Northwind", Location: "Remote", ApplyURL: "https://northwind.example.com/careers"}},
		{"stories", model.Story{Title: "From hostel room to startup", Body: "How a final-year project became a company.", AlumniName: "Rahul Das"}},
	}
	for _, it := range items {
		if err := c.CreateContent(ctx, it.kind, it.item); err != nil {
			return fmt.Errorf("%s: %w", it.kind, err)
		}
	}
	return nil
}
