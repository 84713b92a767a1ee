package sentiment

// TransformerConfig locates an ONNX text-classification model.
type TransformerConfig struct {
	// Model is a Hugging Face repository containing an ONNX export.
	Model string
	// Dir caches downloaded models.
	Dir string
}
