package service

import "fmt"

// Prompt construction is pure string assembly: identical inputs always yield
// identical prompts. Unrecognized or empty keys fall back to the default
// fragment of each table.

var imagePromptTemplates = map[string]string{
	"promotional":   "professional marketing image for %s, modern design, %s tone, clean layout, social media post, high quality, vibrant colors, marketing content",
	"educational":   "educational infographic for %s, informative design, %s tone, professional layout, learning content, clear typography, educational material",
	"entertainment": "fun and engaging social media image for %s, creative design, %s tone, eye-catching visuals, entertainment content, colorful design",
	"news":          "news announcement image for %s, professional design, %s tone, modern layout, breaking news style, current events",
	"general":       "professional social media image for %s, %s tone, modern design, clean layout, social media post",
}

var lengthInstructions = map[string]string{
	"short":  "Crie um post curto com 1-2 frases",
	"medium": "Crie um post médio com 3-4 frases",
	"long":   "Crie um post longo com 5+ frases",
}

var toneInstructions = map[string]string{
	"professional": "Use um tom profissional e formal",
	"casual":       "Use um tom casual e descontraído",
	"friendly":     "Use um tom amigável e acolhedor",
	"humorous":     "Use um tom humorístico e divertido",
}

var typeInstructions = map[string]string{
	"promotional":   "Foque em promover produtos ou serviços",
	"educational":   "Foque em educar e informar o público",
	"entertainment": "Foque em entreter e engajar o público",
	"news":          "Foque em compartilhar notícias e atualizações",
}

// BuildImagePrompt selects the image template for the post type and
// interpolates the business description and tone.
func BuildImagePrompt(postType, businessDescription, tone string) string {
	if businessDescription == "" {
		businessDescription = "negócio"
	}
	if tone == "" {
		tone = "profissional"
	}

	template, ok := imagePromptTemplates[postType]
	if !ok {
		template = imagePromptTemplates["general"]
	}

	return fmt.Sprintf(template, businessDescription, tone)
}

// BuildTextPrompt composes the text generation instruction from the length,
// tone, post-type and platform fragments.
func BuildTextPrompt(postType, businessDescription, tone, length, platform string) string {
	if businessDescription == "" {
		businessDescription = "negócio"
	}
	if platform == "" {
		platform = "social media"
	}

	lengthInstruction, ok := lengthInstructions[length]
	if !ok {
		lengthInstruction = lengthInstructions["medium"]
	}
	toneInstruction, ok := toneInstructions[tone]
	if !ok {
		toneInstruction = toneInstructions["professional"]
	}
	typeInstruction, ok := typeInstructions[postType]
	if !ok {
		typeInstruction = typeInstructions["promotional"]
	}

	return fmt.Sprintf(
		"Você é um especialista em marketing digital. %s. %s. %s. Crie um post para %s sobre: %s. Inclua emojis relevantes e hashtags populares. Responda apenas com o texto do post.",
		lengthInstruction, toneInstruction, typeInstruction, platform, businessDescription)
}
