package logging

import (
	"bufio"
	"errors"
	"fmt"
	"jfront/common"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------
// This section contains all the display functions for the different kinds of
// messages that can be logged.

func (ce *ConfigError) display() {
	PrintErrorMessage(ce.Kind+" Error", errors.New(ce.Message))
}

func (bw *BuildWarning) display() {
	PrintWarningMessage(bw.Kind+" Warning", bw.Message)
}

var compileMsgStrings = map[int]string{
	LMKName:      "Name",
	LMKAccess:    "Access",
	LMKTyping:    "Type",
	LMKOverload:  "Overload",
	LMKException: "Exception",
	LMKReach:     "Reachability",
	LMKDef:       "Definition",
	LMKUsage:     "Usage",
	LMKInherit:   "Inheritance",
	LMKImport:    "Import",
}

func (cm *CompileMessage) display() {
	cm.displayBanner()

	if cm.Position != nil {
		fmt.Printf("%s:%d:%d: ", cm.filePath(), cm.Position.StartLn, cm.Position.StartCol)
	}
	fmt.Println(cm.Message)

	if cm.Position != nil {
		cm.displayCodeSelection()
	}
}

func (cm *CompileMessage) filePath() string {
	if cm.Context == nil {
		return "<unknown>"
	}

	return cm.Context.FilePath
}

// displayBanner displays the banner on top of all compilation messages
func (cm *CompileMessage) displayBanner() {
	fmt.Print("\n\n-- ")
	kindStr := KindName(cm.Kind)
	kindLen := len(kindStr)
	if cm.isError() {
		ErrorStyleBG.Print(kindStr + " Error")
		kindLen += 7
	} else {
		WarnStyleBG.Print(kindStr + " Warning")
		kindLen += 9
	}

	fmt.Print(" ")

	fileName := filepath.Base(cm.filePath())
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - kindLen - 1
	if dashCount < 1 {
		dashCount = 1
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displayCodeSelection displays the erroneous code (with line numbers) and
// highlights the appropriate sections.  Units do not always come with their
// source text so a missing file is simply skipped.
func (cm *CompileMessage) displayCodeSelection() {
	if cm.Context == nil {
		return
	}

	f, err := os.Open(filepath.Join(logger.buildPath, cm.Context.FilePath))
	if err != nil {
		return
	}
	defer f.Close()

	endLn := cm.Position.EndLn
	if endLn < cm.Position.StartLn {
		endLn = cm.Position.StartLn
	}

	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanLines)
	lines := make([]string, endLn-cm.Position.StartLn+1)
	for lineNumber := 1; sc.Scan(); lineNumber++ {
		if lineNumber >= cm.Position.StartLn && lineNumber <= endLn {
			lines[lineNumber-cm.Position.StartLn] = strings.ReplaceAll(sc.Text(), "\t", "    ")
		}
	}

	fmt.Println()

	// calculate the amount to pad line numbers by and use it to build a padding
	// format string (so we can use it to print out line numbers neatly)
	maxLineNumberWidth := len(strconv.Itoa(endLn)) + 1
	lineNumberFmtStr := "%-" + strconv.Itoa(maxLineNumberWidth) + "v"

	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumberFmtStr, i+cm.Position.StartLn))
		fmt.Print("|  ")
		fmt.Println(line)

		if i == 0 {
			fmt.Print(strings.Repeat(" ", maxLineNumberWidth), "|  ")

			startCol := cm.Position.StartCol - 1
			if startCol < 0 || startCol > len(line) {
				startCol = 0
			}

			width := cm.Position.EndCol - cm.Position.StartCol
			if width < 1 || startCol+width > len(line) {
				width = 1
			}

			fmt.Print(strings.Repeat(" ", startCol))
			ErrorColorFG.Println(strings.Repeat("^", width))
		}
	}

	fmt.Println()
}

const fatalErrorPostlude = `
This is a bug in the compiler, not in the analyzed code.`

func displayFatalError(msg string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Internal Compiler Error ")
	ErrorColorFG.Println(msg)
	InfoColorFG.Println(fatalErrorPostlude)
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays all the compiler information before starting
// analysis
func displayCompileHeader(batchName string) {
	fmt.Print("jfront ")
	InfoColorFG.Print("v" + common.Version)
	fmt.Print(" -- batch: ")
	InfoColorFG.Println(batchName)
}

// phaseSpinner stores the current phase spinner
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Declaring")

// displayBeginPhase displays the beginning of a compilation phase
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a compilation phase
func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(
				currentPhase+strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(currentPhase + strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2))
		}

		phaseSpinner = nil
	}
}

// displayCompilationFinished displays a compilation finished message
func displayCompilationFinished(success bool, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}
