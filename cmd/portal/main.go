package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tsc-access-portal/client"
	"tsc-access-portal/config"
	"tsc-access-portal/models"
	"tsc-access-portal/monitor"
	"tsc-access-portal/services"
	"tsc-access-portal/session"
	"tsc-access-portal/telemetry"
	"tsc-access-portal/workflow"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Load()

	tscNo := flag.String("tsc-no", os.Getenv("PORTAL_TSC_NO"), "TSC number to log in with")
	password := flag.String("password", os.Getenv("PORTAL_PASSWORD"), "password (prefer PORTAL_PASSWORD env)")
	tab := flag.String("tab", workflow.TabPending, "dashboard tab: pending|history|manage")
	flag.Parse()

	if *tscNo == "" || *password == "" {
		log.Fatal("credentials required: set PORTAL_TSC_NO and PORTAL_PASSWORD or pass -tsc-no/-password")
	}

	shutdownTelemetry := telemetry.Setup("tsc-access-portal")
	defer shutdownTelemetry(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.APIBaseURL, cfg.RequestTimeout)

	sess, err := session.Login(ctx, api, *tscNo, *password, stop)
	if err != nil {
		log.Fatalf("❌ Login failed: %v", err)
	}
	user := sess.User()
	log.Printf("🔑 Logged in as %s (%s, role %s)", user.FullName, user.TSCNo, user.Role)
	log.Printf("🌐 Backend: %s, polling every %s", cfg.APIBaseURL, cfg.PollInterval)

	defer func() {
		logoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sess.Logout(logoutCtx); err != nil {
			log.Printf("logout failed: %v", err)
		}
	}()

	engine := workflow.NewEngine(cfg.OverdueAfter)

	switch user.Role {
	case models.RoleHOD, models.RoleICT, models.RoleSysAdmin, models.RoleSuperAdmin:
		runDashboard(ctx, cfg, sess, engine, *tab)
	default:
		runStaffView(ctx, cfg, sess)
	}
}

// runDashboard polls the role dashboard and renders each snapshot.
func runDashboard(ctx context.Context, cfg config.Config, sess *session.Session, engine *workflow.Engine, tab string) {
	dashboard := services.NewDashboard(sess, engine, services.RealClock, cfg.PollInterval)

	if cfg.MonitorPort != "" {
		go func() {
			log.Printf("📈 Monitor listening on port %s", cfg.MonitorPort)
			if err := monitor.Serve(cfg.MonitorPort, cfg.MonitorLogToken, dashboard); err != nil {
				log.Printf("monitor server stopped: %v", err)
			}
		}()
	}

	if tab != workflow.TabPending {
		if err := dashboard.SetTab(ctx, tab); err != nil {
			log.Printf("❌ Loading tab %q failed: %v", tab, err)
		}
	}

	done := make(chan error, 1)
	go func() { done <- dashboard.Run(ctx) }()

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			if err != nil && ctx.Err() == nil {
				log.Printf("❌ Dashboard stopped: %v", err)
			}
			return
		case <-ticker.C:
			renderView(dashboard.Snapshot())
		}
	}
}

func renderView(view services.View) {
	if view.Stats != nil {
		fmt.Printf("\n== Stats: %d pending | %d overdue | %d reviewed today | history %d (%d approved / %d rejected)\n",
			view.Stats.PendingSystems, view.Stats.OverdueRequests, view.Stats.ReviewedToday,
			view.Stats.TotalHistory, view.Stats.ApprovedHistory, view.Stats.RejectedHistory)
	}
	fmt.Printf("== Page %d, %d request(s) total\n", view.Page, view.Count)
	for _, row := range view.Requests {
		fmt.Printf("REQ-%d %s (%s) %s [%s]\n",
			row.Request.ID, row.Request.RequesterName, row.Request.TSCNo,
			row.Request.RequestType, row.Status)
		for _, sys := range row.Systems {
			marker := ""
			if sys.State.IsOverdue {
				marker = fmt.Sprintf("  ⚠ overdue (%d days)", sys.State.DaysOpen)
			}
			name := sys.System.SystemDisplay
			if name == "" {
				name = models.SystemName(sys.System.System)
			}
			fmt.Printf("  - %-18s %s%s\n", name, sys.State.CurrentStage, marker)
		}
	}
}

// runStaffView polls the caller's own requests.
func runStaffView(ctx context.Context, cfg config.Config, sess *session.Session) {
	reqSvc := services.NewRequestService(sess)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		page, err := reqSvc.MyRequests(ctx, "")
		if err != nil {
			if client.IsCanceled(err) || ctx.Err() != nil {
				return
			}
			log.Printf("requests fetch failed: %v", err)
		} else {
			fmt.Printf("\n== My requests (%d total)\n", page.Count)
			for _, req := range page.Results {
				fmt.Printf("REQ-%d %s submitted %s [%s]\n",
					req.ID, req.RequestType, req.SubmittedAt.Format("2006-01-02"), workflow.EffectiveStatus(req))
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
