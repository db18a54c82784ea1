package main

import (
	"fmt"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/im7mortal/UTM"
	"github.com/maseology/goHydro/pet"
	"github.com/maseology/mmio"
	"github.com/maseology/petgrid"
	"github.com/maseology/petgrid/forcing"
	"github.com/maseology/petgrid/grid"
	"github.com/maseology/petgrid/solar"
	"github.com/sirupsen/logrus"
)

func main() {

	const (
		nr, nc  = 52, 52 // nodes
		cs      = 50.    // [m]
		eorig   = 604000.
		norig   = 4857000. // UTM zone 17N
		utmzone = 17
		albedo  = 0.23
		nt      = 365
	)

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nrun complete")

	latitude, _, err := UTM.ToLatLon(eorig, norig, utmzone, "", true)
	if err != nil {
		logrus.Fatalf("run: %v -- (x,y)=(%f, %f)", err, eorig, norig)
	}

	gd, err := grid.NewDefinition(nr, nc, cs)
	if err != nil {
		logrus.Fatalf("run: %v", err)
	}
	gd.Eorig, gd.Norig = eorig, norig

	// a gentle south-facing incline so the slope-aspect factors engage
	elev := make([]float64, gd.Nnodes())
	for i := range elev {
		elev[i] = 300. + float64(i/nc)*cs*0.05
	}
	if err := gd.AddNodeField(solar.ElevField, elev); err != nil {
		logrus.Fatalf("run: %v", err)
	}

	cfg := petgrid.Default()
	cfg.Method = petgrid.MethodPriestleyTaylor
	cfg.Albedo = albedo
	cfg.Latitude = latitude
	p, err := petgrid.New(gd, cfg)
	if err != nil {
		logrus.Fatalf("run: %v", err)
	}
	tt.Print("model build complete")

	// an independent radiation model for the Makkink cross-check
	sm, err := solar.New(gd, latitude, albedo, 300., 0.18, 1366.67, 5.67e-8)
	if err != nil {
		logrus.Fatalf("run: %v", err)
	}
	sm.Tmin, sm.Tmax = gd.CellArray(0.), gd.CellArray(0.)

	frc := forcing.Synthetic(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), nt, 8., 14., 10.)
	frc.CheckAndPrint()

	uiprogress.Start()
	bar := uiprogress.AddBar(nt).AppendCompleted().PrependElapsed()

	petd, mkk := make([]float64, nt), make([]float64, nt)
	for j := 0; j < nt; j++ {
		t := float64(j) / 365.
		tn, tx := frc.Tn[j], frc.Tx[j]
		tm := (tn + tx) / 2.

		p.SetCurrentTime(t)
		p.SetTmin(petgrid.Scalar(tn))
		p.SetTmax(petgrid.Scalar(tx))
		if err := p.Update(); err != nil {
			logrus.Fatalf("run: day %d: %v", j, err)
		}
		petd[j] = mean(p.Values())

		sm.CurrentTime = t
		for i := range sm.Tmin {
			sm.Tmin[i], sm.Tmax[i] = tn, tx
		}
		sm.Update()
		kg := mean(sm.NetShortwave) / (1. - albedo)
		mkk[j] = pet.Makkink(kg, tm, 101300., 0.61, -1.2e-4)

		bar.Incr()
	}
	uiprogress.Stop()

	mmio.WriteCsvDateFloats("pet.csv", "date,pet,makkink", frc.T, petd, mkk)
	tt.Print("annual series written to pet.csv")
}

func mean(a []float64) float64 {
	s := 0.
	for _, v := range a {
		s += v
	}
	return s / float64(len(a))
}
