package detectors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigocheck/internal/analyzer/detectors"
	"bigocheck/internal/models"
	"bigocheck/internal/syntax"
	"bigocheck/internal/syntax/golang"
	"bigocheck/internal/syntax/java"
)

func detect(root *syntax.Node) *models.ReportSet {
	reports := models.NewReportSet()
	detectors.NewComplexityDetector().Detect(root, reports)
	detectors.NewRecursionDetector().Detect(root, reports)
	return reports
}

func analyzeJava(t *testing.T, src string) *models.ReportSet {
	t.Helper()
	root, err := java.NewParser().Parse("Test.java", []byte(src))
	require.NoError(t, err)
	return detect(root)
}

func analyzeGo(t *testing.T, src string) *models.ReportSet {
	t.Helper()
	root, err := golang.NewParser().Parse("input.go", []byte(src))
	require.NoError(t, err)
	return detect(root)
}

func report(t *testing.T, reports *models.ReportSet, name string) *models.MethodReport {
	t.Helper()
	r := reports.Get(name)
	require.NotNil(t, r, "no report for %s", name)
	return r
}

func TestComplexityDetector_Java(t *testing.T) {
	t.Run("Should rate functions without loops or recursion as constant", func(t *testing.T) {
		reports := analyzeJava(t, `class A {
    int add(int a, int b) {
        return a + b;
    }
}`)
		r := report(t, reports, "add")
		assert.Equal(t, "O(1)", r.TimeComplexity())
		assert.Equal(t, "O(1)", r.SpaceComplexity())
		assert.Equal(t, "[]", r.LoopsString())
		assert.False(t, r.IsRecursive)
	})

	t.Run("Should rate a single stepping loop as linear", func(t *testing.T) {
		reports := analyzeJava(t, `class A {
    int sum(int[] xs) {
        int s = 0;
        for (int i = 0; i < xs.length; i++) {
            s += xs[i];
        }
        return s;
    }
}`)
		r := report(t, reports, "sum")
		assert.Equal(t, "O(n)", r.TimeComplexity())
		assert.Equal(t, 1, r.MaxNestedDepth)
		assert.Equal(t, "[LINEAR]", r.LoopsString())
	})

	t.Run("Should multiply a nested halving loop", func(t *testing.T) {
		reports := analyzeJava(t, `class A {
    void f(int n) {
        for (int i = 0; i < n; i++) {
            for (int j = 1; j < n; j *= 2) {
            }
        }
    }
}`)
		r := report(t, reports, "f")
		assert.Equal(t, "O(n * log n)", r.TimeComplexity())
		assert.Equal(t, 2, r.MaxNestedDepth)
		assert.Equal(t, "[LINEAR, LOGARITHMIC]", r.LoopsString())
	})

	t.Run("Should add a loop that follows a nested pair", func(t *testing.T) {
		reports := analyzeJava(t, `class A {
    void f(int n) {
        for (int i = 0; i < n; i++) {
            for (int j = 0; j < n; j++) {
            }
        }
        for (int k = 0; k < n; k++) {
        }
    }
}`)
		r := report(t, reports, "f")
		assert.Equal(t, "O(n * n + n)", r.TimeComplexity())
		assert.Equal(t, 2, r.MaxNestedDepth)
		assert.Equal(t, "[LINEAR, LINEAR, LINEAR]", r.LoopsString())
	})

	t.Run("Should add sequential top level loops", func(t *testing.T) {
		reports := analyzeJava(t, `class A {
    void f(int n) {
        for (int i = 0; i < n; i++) {
        }
        while (n > 1) {
            n /= 2;
        }
    }
}`)
		r := report(t, reports, "f")
		assert.Equal(t, "O(n + log n)", r.TimeComplexity())
		assert.Equal(t, 1, r.MaxNestedDepth)
	})

	t.Run("Should mark direct recursion from the self call", func(t *testing.T) {
		reports := analyzeJava(t, `public class Test {
    static int fact(int n) {
        if (n == 0) return 1;
        return n * fact(n - 1);
    }

    public static void main(String[] args) {
        System.out.println(fact(5));
    }
}`)
		fact := report(t, reports, "fact")
		assert.True(t, fact.IsRecursive)
		assert.Equal(t, "O(n)", fact.TimeComplexity())
		assert.Equal(t, "O(n)", fact.SpaceComplexity())
		assert.Equal(t, 0, fact.MaxNestedDepth)

		main := report(t, reports, "main")
		assert.False(t, main.IsRecursive)
		assert.Equal(t, []string{"println", "fact"}, main.Callees())
		assert.Equal(t, "O(1)", main.TimeComplexity())
	})

	t.Run("Should keep nested class methods in their own report", func(t *testing.T) {
		reports := analyzeJava(t, `class Outer {
    void outer(int n) {
        for (int i = 0; i < n; i++) {
            Runnable r = new Runnable() {
                public void run() {
                    for (int j = 0; j < 10; j *= 2) {
                    }
                }
            };
        }
        helper();
    }
}`)
		outer := report(t, reports, "outer")
		assert.Equal(t, "[LINEAR]", outer.LoopsString())
		assert.Equal(t, []string{"helper"}, outer.Callees())

		run := report(t, reports, "run")
		assert.Equal(t, 1, run.MaxNestedDepth)
		assert.Equal(t, "[LOGARITHMIC]", run.LoopsString())
	})

	t.Run("Should merge overloads under one name", func(t *testing.T) {
		reports := analyzeJava(t, `class A {
    void f(int n) {
        for (int i = 0; i < n; i++) {
        }
    }
    void f(String s) {
        for (int i = 0; i < 3; i++) {
            for (int j = 0; j < 3; j++) {
            }
        }
    }
}`)
		assert.Equal(t, 1, reports.Len())
		r := report(t, reports, "f")
		assert.Equal(t, 2, r.MaxNestedDepth)
		assert.Equal(t, "[LINEAR, LINEAR, LINEAR]", r.LoopsString())
		assert.Equal(t, 2, r.Line)
	})
}

func TestComplexityDetector_Go(t *testing.T) {
	reports := analyzeGo(t, `package sample

func search(xs []int, target int) int {
	lo, hi := 0, len(xs)
	for lo < hi {
		mid := (lo + hi) / 2
		if xs[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func pairs(xs []int) int {
	count := 0
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			count++
		}
	}
	return count
}

func bits(n uint) int {
	c := 0
	for ; n > 0; n >>= 1 {
		c++
	}
	return c
}
`)

	t.Run("Should declare functions in source order", func(t *testing.T) {
		var names []string
		for _, r := range reports.Reports() {
			names = append(names, r.Name)
		}
		assert.Equal(t, []string{"search", "pairs", "bits"}, names)
	})

	t.Run("Should rate a condition-only loop without updates as linear", func(t *testing.T) {
		assert.Equal(t, "O(n)", report(t, reports, "search").TimeComplexity())
	})

	t.Run("Should multiply range and counted loops", func(t *testing.T) {
		assert.Equal(t, "O(n * n)", report(t, reports, "pairs").TimeComplexity())
	})

	t.Run("Should rate shifting loops as logarithmic", func(t *testing.T) {
		assert.Equal(t, "O(log n)", report(t, reports, "bits").TimeComplexity())
	})
}

func TestComplexityDetector_LoopsOutsideFunctions(t *testing.T) {
	root := syntax.Unit()
	root.Add(&syntax.Node{Kind: syntax.KindFor, Update: unary("++")})
	root.Add(&syntax.Node{Kind: syntax.KindCall, Name: "init"})

	reports := detect(root)
	assert.Equal(t, 0, reports.Len())
}

func TestComplexityDetector_Idempotent(t *testing.T) {
	src := `class A {
    void a(int n) { for (int i = 0; i < n; i++) { b(n); } while (n > 0) { n /= 2; } }
    void b(int n) { for (int x : new int[n]) { c(); } }
    void c() { a(1); }
}`
	first := analyzeJava(t, src).Results()
	second := analyzeJava(t, src).Results()
	assert.Equal(t, first, second)
	assert.Equal(t, "[LINEAR, LOGARITHMIC]", first[0].Loops)
	assert.Equal(t, "O(n + log n)", first[0].TimeComplexity)
}

func TestComplexityDetector_Name(t *testing.T) {
	assert.Equal(t, "Loop Complexity Detector", detectors.NewComplexityDetector().Name())
}
