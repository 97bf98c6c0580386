package cli

import (
	"fmt"

	"github.com/diillson/bedrock-profiles-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
     ____           _                _      ____             __ _ _           
    | __ )  ___  __| |_ __ ___   ___| | __ |  _ \ _ __ ___  / _(_) | ___  ___ 
    |  _ \ / _ \/ _' | '__/ _ \ / __| |/ / | |_) | '__/ _ \| |_| | |/ _ \/ __|
    | |_) |  __/ (_| | | | (_) | (__|   <  |  __/| | | (_) |  _| | |  __/\__ \
    |____/ \___|\__,_|_|  \___/ \___|_|\_\ |_|   |_|  \___/|_| |_|_|\___||___/
        `
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))
	fmt.Println(blue(fmt.Sprintf("Bedrock Inference Profile Manager (v%s)", version.FormatVersion())))
}
