package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// pdftk form-fill mechanics. Templates are AcroForm PDFs; values are written
// through a generated FDF file and the result is flattened.

const maxTemplateBytes = 50 * 1024 * 1024

func fillFormFields(pdfData []byte, values map[string]string) ([]byte, error) {
	if err := validateFillInputs(pdfData, values); err != nil {
		return nil, err
	}

	inputFile, err := os.CreateTemp("", "pdf_input_*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp input file: %w", err)
	}
	defer os.Remove(inputFile.Name())
	defer inputFile.Close()

	fdfFile, err := os.CreateTemp("", "pdf_fdf_*.fdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp FDF file: %w", err)
	}
	defer os.Remove(fdfFile.Name())
	defer fdfFile.Close()

	outputFile, err := os.CreateTemp("", "pdf_output_*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp output file: %w", err)
	}
	defer os.Remove(outputFile.Name())
	outputFile.Close()

	if _, err := inputFile.Write(pdfData); err != nil {
		return nil, fmt.Errorf("failed to write PDF to temp file: %w", err)
	}
	inputFile.Close()

	fieldNames, err := formFieldNames(inputFile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to get form field names: %w", err)
	}
	if len(fieldNames) == 0 {
		return nil, errors.New("PDF has no form fields (AcroForm)")
	}

	if _, err := fdfFile.WriteString(generateFDF(values)); err != nil {
		return nil, fmt.Errorf("failed to write FDF file: %w", err)
	}
	fdfFile.Close()

	cmd := exec.Command("pdftk", inputFile.Name(), "fill_form", fdfFile.Name(), "output", outputFile.Name(), "flatten")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftk fill_form failed: %w, stderr: %s", err, stderr.String())
	}

	filledPDF, err := os.ReadFile(outputFile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read filled PDF: %w", err)
	}
	return filledPDF, nil
}

func formFieldNames(pdfPath string) ([]string, error) {
	cmd := exec.Command("pdftk", pdfPath, "dump_data_fields")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftk dump_data_fields failed: %w, stderr: %s", err, stderr.String())
	}

	var fieldNames []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if strings.HasPrefix(line, "FieldName: ") {
			name := strings.TrimSpace(strings.TrimPrefix(line, "FieldName: "))
			if name != "" {
				fieldNames = append(fieldNames, name)
			}
		}
	}
	return fieldNames, nil
}

func generateFDF(values map[string]string) string {
	var builder strings.Builder

	builder.WriteString("%FDF-1.2\n")
	builder.WriteString("1 0 obj\n")
	builder.WriteString("<<\n")
	builder.WriteString("/FDF\n")
	builder.WriteString("<<\n")
	builder.WriteString("/Fields [\n")

	for key, value := range values {
		builder.WriteString(fmt.Sprintf("<< /T (%s) /V (%s) >>\n", escapeFDFString(key), escapeFDFString(value)))
	}

	builder.WriteString("]\n")
	builder.WriteString(">>\n")
	builder.WriteString(">>\n")
	builder.WriteString("endobj\n")
	builder.WriteString("trailer\n")
	builder.WriteString("<<\n")
	builder.WriteString("/Root 1 0 R\n")
	builder.WriteString(">>\n")
	builder.WriteString("%%EOF\n")

	return builder.String()
}

func escapeFDFString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

func validateFillInputs(pdfData []byte, values map[string]string) error {
	if len(pdfData) == 0 {
		return errors.New("empty PDF data")
	}
	if len(pdfData) > maxTemplateBytes {
		return fmt.Errorf("PDF too large: %d bytes (max: %d)", len(pdfData), maxTemplateBytes)
	}
	if !isPDF(pdfData) {
		return errors.New("invalid PDF format")
	}
	if len(values) == 0 {
		return errors.New("no values provided")
	}
	for key := range values {
		if strings.TrimSpace(key) == "" {
			return errors.New("empty key in values map")
		}
	}
	return nil
}

func isPDF(data []byte) bool {
	return len(data) > 4 && string(data[:4]) == "%PDF"
}
