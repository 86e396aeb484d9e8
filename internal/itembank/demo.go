package itembank

import (
	"fmt"

	"github.com/gioe/quotient/internal/blueprint"
)

// DemoBank builds a deterministic synthetic bank for simulation and local
// testing: perDomain items per blueprint domain, difficulties spread evenly
// over [-2.5, 2.5] with discriminations cycling through a realistic range.
func DemoBank(reg *blueprint.Registry, perDomain int) *Bank {
	discriminations := []float64{0.8, 1.0, 1.2, 1.5, 1.8}

	bank := &Bank{Name: "demo"}
	for _, d := range reg.Domains() {
		for i := 0; i < perDomain; i++ {
			var b float64
			if perDomain > 1 {
				b = -2.5 + 5.0*float64(i)/float64(perDomain-1)
			}
			bank.Items = append(bank.Items, Calibrated{
				ItemID: fmt.Sprintf("%s-%03d", d.Tag, i+1),
				A:      discriminations[i%len(discriminations)],
				B:      b,
				Tag:    d.Tag,
			})
		}
	}
	return bank
}
