// File: internal/analysis/fuzz_test.go
package analysis

import (
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/google/go-cmp/cmp"

	"github.com/salman3757/passgauge/api/schemas"
)

// FuzzAnalyze hammers the full estimator pipeline with arbitrary input. The
// engine must never panic and every report must honor its structural
// invariants no matter what the password looks like.
func FuzzAnalyze(f *testing.F) {
	f.Add("password")
	f.Add("qwerty123abc")
	f.Add("P4ssw0rdP4ssw0rd")
	f.Add("19991231")
	f.Add("")
	f.Add("日本語のパスワード")
	f.Add("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	f.Add("\x00\xff\xfe")

	est := NewEstimator(testLogger(), true)
	sets := []WordSet{newTestWordSet("common", "password", "dragon", "monkey")}

	f.Fuzz(func(t *testing.T, password string) {
		report := est.Analyze(password, sets)

		if report.Findings == nil {
			t.Fatal("findings must never be nil")
		}
		if report.AdjustedEntropyBits < 0 {
			t.Fatalf("adjusted entropy went negative: %f", report.AdjustedEntropyBits)
		}
		if report.AdjustedEntropyBits > report.NaiveEntropyBits {
			t.Fatalf("adjusted %f exceeds naive %f", report.AdjustedEntropyBits, report.NaiveEntropyBits)
		}
		for _, finding := range report.Findings {
			if finding.Start < 0 || finding.End > report.Length || finding.Start >= finding.End {
				t.Fatalf("finding span [%d,%d) escapes a %d-rune password", finding.Start, finding.End, report.Length)
			}
			if finding.SeverityBits < 0 {
				t.Fatalf("negative severity: %+v", finding)
			}
		}

		// Same input, same report, byte for byte.
		if diff := cmp.Diff(report, est.Analyze(password, sets)); diff != "" {
			t.Fatalf("repeated analysis diverged (-first +second):\n%s", diff)
		}
	})
}

// FuzzGenerate drives the generator with fuzz-shaped options. Inputs either
// fail validation with ErrInvalidOptions or produce a password that matches
// the requested shape exactly.
func FuzzGenerate(f *testing.F) {
	f.Add([]byte{0x01})

	gen := NewGenerator(testLogger())

	f.Fuzz(func(t *testing.T, data []byte) {
		consumer := fuzz.NewConsumer(data)
		var opts schemas.GeneratorOptions
		if err := consumer.GenerateStruct(&opts); err != nil {
			return
		}
		// Unbounded lengths make the fuzzer spend its time on allocation.
		if opts.Length > 1024 || len(opts.CustomPattern) > 256 {
			return
		}

		out, err := gen.Generate(opts)
		if err != nil {
			return
		}

		if opts.CustomPattern != "" {
			wantLen := len([]rune(opts.CustomPattern))
			if got := len([]rune(out.Password)); got != wantLen {
				t.Fatalf("pattern of %d positions produced %d runes", wantLen, got)
			}
			return
		}

		if got := len([]rune(out.Password)); got != opts.Length {
			t.Fatalf("requested %d runes, got %d", opts.Length, got)
		}
		pool, err := BuildPool(opts)
		if err != nil {
			t.Fatalf("generation succeeded but pool construction failed: %v", err)
		}
		allowed := make(map[rune]bool, pool.Size())
		for _, r := range pool.Runes() {
			allowed[r] = true
		}
		for _, r := range out.Password {
			if !allowed[r] {
				t.Fatalf("rune %q is outside the configured pool", string(r))
			}
		}
	})
}
