// Command seed creates a demo customer and officer profile and prints a
// bearer token for each, for local runs against cmd/api.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"loan-origination/internal/adapter/repository/mysql"
	"loan-origination/internal/config"
	"loan-origination/internal/domain/auth"
	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/officer"
	"loan-origination/internal/infrastructure/db"
	"loan-origination/internal/infrastructure/logging"
	"loan-origination/internal/infrastructure/token"
)

func main() {
	customerUser := flag.String("customer", "demo-customer", "customer user id")
	income := flag.String("income", "85000", "customer annual income")
	creditScore := flag.Int("credit-score", 720, "customer credit score (300-850)")
	employment := flag.String("employment", "EMPLOYED", "customer employment status")
	officerUser := flag.String("officer", "demo-officer", "officer user id")
	branch := flag.String("branch", "Head Office", "officer branch")
	flag.Parse()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	emp, err := customer.ParseEmploymentStatus(*employment)
	if err != nil {
		log.WithError(err).Fatal("bad -employment")
	}
	inc, err := decimal.NewFromString(*income)
	if err != nil {
		log.WithError(err).Fatal("bad -income")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.Options{Log: log, LogLevel: cfg.DBLogLevel})
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	if err := db.Migrate(gdb); err != nil {
		log.WithError(err).Fatal("migrate")
	}

	ctx := context.Background()
	cust := &customer.Profile{UserID: *customerUser, FullName: "Demo Customer", Income: inc, CreditScore: *creditScore, EmploymentStatus: emp}
	if err := ensureCustomer(ctx, mysql.NewCustomerRepository(gdb), cust); err != nil {
		log.WithError(err).Fatal("seed customer")
	}
	off := &officer.Profile{UserID: *officerUser, FullName: "Demo Officer", Branch: *branch}
	if err := ensureOfficer(ctx, mysql.NewOfficerRepository(gdb), off); err != nil {
		log.WithError(err).Fatal("seed officer")
	}

	tokens, err := token.NewService(token.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TTL: cfg.JWTTTL})
	if err != nil {
		log.WithError(err).Fatal("token service")
	}
	for _, u := range []struct {
		id   string
		role auth.Role
	}{{cust.UserID, auth.RoleCustomer}, {off.UserID, auth.RoleOfficer}} {
		tok, err := tokens.Issue(u.id, u.role)
		if err != nil {
			log.WithError(err).Fatal("issue token")
		}
		log.WithFields(logrus.Fields{"user_id": u.id, "role": u.role}).Info("seeded")
		fmt.Printf("%s\t%s\t%s\n", u.role, u.id, tok)
	}
}

func ensureCustomer(ctx context.Context, repo customer.Repository, p *customer.Profile) error {
	existing, err := repo.GetByUserID(ctx, p.UserID)
	if err == nil {
		*p = *existing
		return nil
	}
	if !errors.Is(err, customer.ErrNotFound) {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return repo.Create(ctx, p)
}

func ensureOfficer(ctx context.Context, repo officer.Repository, p *officer.Profile) error {
	existing, err := repo.GetByUserID(ctx, p.UserID)
	if err == nil {
		*p = *existing
		return nil
	}
	if !errors.Is(err, officer.ErrNotFound) {
		return err
	}
	return repo.Create(ctx, p)
}
