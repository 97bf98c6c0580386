package console

import (
	"fmt"
	"strings"

	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// Section imprime um título de seção, ex.: "=== Tag Configuration ===".
func (c *Console) Section(title string) {
	fmt.Println()
	fmt.Println(BrightCyan(fmt.Sprintf("=== %s ===", title)))
}

// BrightCyan colore títulos de seção.
var BrightCyan = color.New(color.FgCyan, color.Bold).SprintFunc()

// --- Prompts ---

// Prompt lê uma linha; resposta vazia retorna o valor padrão.
func (c *Console) Prompt(label string, def string) (string, error) {
	input := pterm.DefaultInteractiveTextInput
	if def != "" {
		input = *input.WithDefaultValue(def)
	}
	answer, err := input.Show(label)
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// PromptSecret lê um valor sem ecoar os caracteres.
func (c *Console) PromptSecret(label string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show(label)
	if err != nil {
		return "", fmt.Errorf("error reading secret input: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// Confirm faz uma pergunta y/n.
func (c *Console) Confirm(label string, def bool) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(def).Show(label)
	if err != nil {
		return def, fmt.Errorf("error reading confirmation: %w", err)
	}
	return ok, nil
}

// --- Status ---

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// --- Tabelas ---

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}
