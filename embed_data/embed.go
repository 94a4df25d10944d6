package embed_data

import _ "embed"

//go:embed prompts/readme_prompt.md
var ReadmePrompt []byte

//go:embed prompts/analysis_prompt.md
var AnalysisPrompt []byte

//go:embed models_details.json
var ModelDetails []byte
