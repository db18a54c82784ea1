package forcing

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"time"
)

// Forcing holds a daily meteorological record driving PET updates.
type Forcing struct {
	T      []time.Time // [dateID]
	Tn, Tx []float64   // [dateID] daily temperature extremes [deg C]
}

// Synthetic builds an nd-day sinusoidal temperature record starting at d0,
// with annual mean tmean, seasonal amplitude tamp and diurnal range trange.
func Synthetic(d0 time.Time, nd int, tmean, tamp, trange float64) *Forcing {
	frc := &Forcing{
		T:  make([]time.Time, nd),
		Tn: make([]float64, nd),
		Tx: make([]float64, nd),
	}
	for j := 0; j < nd; j++ {
		frc.T[j] = d0.AddDate(0, 0, j)
		tm := tmean - tamp*math.Cos(2.*math.Pi*float64(frc.T[j].YearDay()-1)/365.24)
		frc.Tn[j] = tm - trange/2.
		frc.Tx[j] = tm + trange/2.
	}
	return frc
}

// CheckAndPrint writes a record summary to standard output.
func (frc *Forcing) CheckAndPrint() {
	fmt.Println("Forcing summary:")
	nt := len(frc.T)
	fmt.Printf(" %v to %v, daily (%d timesteps)\n", frc.T[0].Format("2006-01-02"), frc.T[nt-1].Format("2006-01-02"), nt)
	sn, sx := 0., 0.
	for j := range frc.T {
		sn += frc.Tn[j]
		sx += frc.Tx[j]
	}
	fmt.Printf(" mean Tn: %.2f   mean Tx: %.2f\n", sn/float64(nt), sx/float64(nt))
}

// SaveGob writes the record to fp.
func (frc *Forcing) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(frc); err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	return f.Close()
}

// LoadGobForcing reads a record from fp.
func LoadGobForcing(fp string) (*Forcing, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	var frc Forcing
	if err := gob.NewDecoder(f).Decode(&frc); err != nil {
		return nil, err
	}
	return &frc, f.Close()
}
