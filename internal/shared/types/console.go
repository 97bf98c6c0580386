package types

// ConsoleInterface define a interface para saída e entrada no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Section(title string)
	Status(message string) StatusHandle
	CreateTable() TableInterface

	PromptInterface
}

// PromptInterface lê respostas do usuário. Todas as chamadas bloqueiam até haver entrada.
type PromptInterface interface {
	// Prompt returns the trimmed answer, or def when the answer is empty.
	Prompt(label string, def string) (string, error)
	// PromptSecret reads a value without echoing it.
	PromptSecret(label string) (string, error)
	// Confirm asks a y/n question.
	Confirm(label string, def bool) (bool, error)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}
