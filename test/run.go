package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	wccCmd         = "go run ./cmd/wcc"
	compileTimeout = 30 * time.Second // includes the go build of wcc itself
	outDir         = "out"
)

type testResult struct {
	fileName string
	passed   bool
	output   string // failure details
	isGood   bool
}

func main() {
	fmt.Println("🧹 Cleaning output directory...")
	_ = os.RemoveAll(outDir)
	_ = os.Mkdir(outDir, 0755)

	fmt.Println("\n🔍 Running good tests:")
	goodFiles, _ := filepath.Glob(filepath.Join("tests/good", "*.w"))
	fmt.Printf("Found %d good test files...\n", len(goodFiles))

	goodPassed, goodFailed := 0, 0
	badPassed, badFailed := 0, 0
	failedTests := []testResult{}

	for _, file := range goodFiles {
		fmt.Printf("→ Running good test: %s\n", filepath.Base(file))
		res := runGoodTest(file)
		if res.passed {
			fmt.Printf("  ✅ %s\n", res.fileName)
			goodPassed++
		} else {
			fmt.Printf("  ❌ %s\n", res.fileName)
			goodFailed++
			failedTests = append(failedTests, res)
		}
	}

	fmt.Println("\n💥 Running bad tests:")
	badFiles, _ := filepath.Glob(filepath.Join("tests/bad", "*.w"))
	fmt.Printf("Found %d bad test files...\n", len(badFiles))

	for _, file := range badFiles {
		fmt.Printf("→ Running bad test: %s\n", filepath.Base(file))
		res := runBadTest(file)
		if res.passed {
			fmt.Printf("  ✅ %s (Failed as expected)\n", res.fileName)
			badPassed++
		} else {
			fmt.Printf("  ❌ %s (Unexpected Result)\n", res.fileName)
			badFailed++
			failedTests = append(failedTests, res)
		}
	}

	if len(failedTests) > 0 {
		fmt.Println("\n--- Detailed Failures ---")
		for _, failure := range failedTests {
			fmt.Printf("\n❌ Test: %s (%s)\n", failure.fileName, map[bool]string{true: "Good Test", false: "Bad Test"}[failure.isGood])
			fmt.Println("Reason:")
			fmt.Println(failure.output)
			fmt.Println("---")
		}
	}

	fmt.Println("\n--------------------")
	fmt.Printf("Good Tests Summary: ✅ Passed: %d | ❌ Failed: %d\n", goodPassed, goodFailed)
	fmt.Printf("Bad Tests Summary:  ✅ Passed: %d | ❌ Failed: %d\n", badPassed, badFailed)
	fmt.Println("--------------------")

	if goodFailed > 0 || badFailed > 0 {
		fmt.Println("\n🚨 Some tests failed!")
		os.Exit(1)
	}
	fmt.Println("\n🎉 All tests passed!")
}

func outPathFor(file string) string {
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return filepath.Join(outDir, name+".c")
}

// runGoodTest compiles file and compares the C output with tests/good/expected.
func runGoodTest(file string) testResult {
	fileName := filepath.Base(file)
	res := testResult{fileName: fileName, isGood: true}

	outPath := outPathFor(file)
	output, err := runWcc(file, outPath)
	if err != nil {
		res.output = fmt.Sprintf("wcc failed: %v\nOutput:\n%s", err, output)
		return res
	}

	expectedPath := filepath.Join("tests/good/expected", filepath.Base(outPath))
	expected, err := os.ReadFile(expectedPath)
	if err != nil {
		res.output = fmt.Sprintf("Missing expected C output: %s", expectedPath)
		return res
	}
	actual, err := os.ReadFile(outPath)
	if err != nil {
		res.output = fmt.Sprintf("Missing generated C: %s\nCompiler Output:\n%s", outPath, output)
		return res
	}

	// Normalize line endings before comparison
	expected = bytes.ReplaceAll(expected, []byte("\r\n"), []byte("\n"))
	actual = bytes.ReplaceAll(actual, []byte("\r\n"), []byte("\n"))

	if !bytes.Equal(expected, actual) {
		res.output = fmt.Sprintf("C Mismatch\nExpected (%s):\n%s\nActual (%s):\n%s", expectedPath, expected, outPath, actual)
		return res
	}

	res.passed = true
	return res
}

// runBadTest expects wcc to fail with a rendered diagnostic and to leave no
// output file behind.
func runBadTest(file string) testResult {
	fileName := filepath.Base(file)
	res := testResult{fileName: fileName, isGood: false}

	outPath := outPathFor(file)
	output, err := runWcc(file, outPath)

	switch {
	case err == nil:
		res.output = fmt.Sprintf("Expected failure but got success.\nOutput:\n%s", output)
	case !strings.Contains(output, "error:"):
		res.output = fmt.Sprintf("Failed, but no diagnostic was printed.\nExit Err: %v\nOutput:\n%s", err, output)
	default:
		if _, statErr := os.Stat(outPath); !errors.Is(statErr, os.ErrNotExist) {
			res.output = fmt.Sprintf("Failed as expected, but %s was written.\nOutput:\n%s", outPath, output)
			return res
		}
		res.passed = true
	}
	return res
}

func runWcc(inPath, outPath string) (string, error) {
	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s --no-color %s %s", wccCmd, inPath, outPath))
	out, err := runCommandWithTimeout(cmd, compileTimeout)
	return string(out), err
}

func runCommandWithTimeout(cmd *exec.Cmd, timeout time.Duration) ([]byte, error) {
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out // Capture both stdout and stderr

	if err := cmd.Start(); err != nil {
		return out.Bytes(), fmt.Errorf("failed to start command '%s': %w", cmd.String(), err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-time.After(timeout):
		if killErr := cmd.Process.Kill(); killErr != nil {
			return out.Bytes(), fmt.Errorf("command '%s' timed out after %v and failed to kill: %w", cmd.String(), timeout, killErr)
		}
		return out.Bytes(), fmt.Errorf("command '%s' timed out after %v", cmd.String(), timeout)
	case err := <-done:
		return out.Bytes(), err
	}
}
