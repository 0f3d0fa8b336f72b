package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ekovaleva/procurement-assist/internal/ai"
	"github.com/ekovaleva/procurement-assist/internal/commodity"
	"github.com/ekovaleva/procurement-assist/internal/logger"
	"github.com/ekovaleva/procurement-assist/internal/metrics"

	"go.uber.org/zap"
)

var ErrExtraction = errors.New("document extraction failed")

const extractionSystemPrompt = `You are a procurement document extraction assistant. Extract structured information from vendor offer documents.
Always return valid JSON with these fields:
- vendor_name: string (the SELLER - found in the letterhead/header, usually on the FIRST line, often with their full address. This is the company SENDING the offer, NOT the recipient. do not include the address just name of the company)
- vat_id: string (Umsatzsteuer-Identifikationsnummer)
- department: string (the BUYER's company name - found in the recipient address block BELOW the letterhead. This is who the offer is addressed TO. Extract ONLY the company name or department, no person names or addresses)
- title: string (brief description of the offer)
- order_lines: array of objects with: description, unit_price (number), amount (number), unit, total_price (number)
  IMPORTANT for order_lines:
  - For the total of an order line use the "Gesamt" column (after any discounts/Rabatt are applied), NOT the base unit price
- total_cost: number
  IMPORTANT for total_cost:
  - Always use the Endsumme/Gesamtsumme/Bruttosumme (final total INCLUDING VAT/MwSt/USt)
  - Do NOT use Nettosumme/net sum
  - Do NOT calculate from order_lines - use the exact final total shown in the document
- suggested_commodity_group_id: string (pick the most appropriate from the commodity groups list)

IMPORTANT for vat_id:
- Only extract a VAT ID if it is explicitly labeled (e.g., "USt-IdNr", "USt-Id", "Id-Nr", "UID")
- The VAT ID should typically start with a 2-letter country code (A-Z) followed by 2-12 alphanumeric characters.
- The vat_id must be taken from a SINGLE line only; stop extraction at the first line break and do NOT include any text or numbers from following lines
- Do NOT guess or use other numeric IDs (invoice numbers, customer IDs, IBAN, order numbers)`

// Completer is the hosted chat model used for structured extraction.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// TextExtractor is the hosted OCR model used for scanned documents.
type TextExtractor interface {
	ExtractText(ctx context.Context, pdf []byte) (string, error)
}

// Cache stores extraction results keyed by document hash. A nil Cache
// disables caching.
type Cache interface {
	Get(ctx context.Context, key string) (*Result, bool)
	Set(ctx context.Context, key, filename string, r *Result)
}

type Service struct {
	chat    Completer
	ocr     TextExtractor
	cache   Cache
	catalog *commodity.Catalog
	metrics *metrics.Metrics
}

func NewService(chat Completer, ocr TextExtractor, cache Cache, catalog *commodity.Catalog, m *metrics.Metrics) *Service {
	return &Service{chat: chat, ocr: ocr, cache: cache, catalog: catalog, metrics: m}
}

// Extract turns an uploaded PDF into a structured field guess.
//
// Strategy: identical documents are answered from cache; otherwise the local
// text layer is tried first (fast, no OCR cost) and the hosted OCR model is
// consulted only when the text-layer result is missing critical fields. When
// both paths produced a result they are merged field-wise.
func (s *Service) Extract(ctx context.Context, content []byte, filename string) (*Result, error) {
	sum := sha256.Sum256(content)
	key := hex.EncodeToString(sum[:])

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.metrics.Extractions.WithLabelValues("cached").Inc()
			return cached, nil
		}
	}

	text := textLayer(content)
	logger.Log.Info("text layer extracted", zap.String("filename", filename), zap.Int("chars", len(text)))

	var textResult *Result
	if text != "" {
		r, err := s.extractFromText(ctx, text)
		if err != nil {
			logger.Log.Warn("text layer extraction failed", zap.Error(err))
		} else {
			textResult = r
		}
	}

	var ocrResult *Result
	if missingCritical(textResult) {
		ocrText, err := s.ocr.ExtractText(ctx, content)
		if err != nil {
			logger.Log.Warn("ocr failed", zap.Error(err))
			if textResult == nil {
				s.metrics.Extractions.WithLabelValues("error").Inc()
				return nil, fmt.Errorf("%w: text layer and ocr both failed: %v", ErrExtraction, err)
			}
		} else {
			logger.Log.Info("ocr text extracted", zap.String("filename", filename), zap.Int("chars", len(ocrText)))
			r, err := s.extractFromText(ctx, ocrText)
			if err != nil {
				logger.Log.Warn("ocr extraction failed", zap.Error(err))
			} else {
				ocrResult = r
			}
		}
	}

	var result *Result
	var outcome string
	switch {
	case textResult != nil && ocrResult != nil:
		result = merge(textResult, ocrResult)
		outcome = "merged"
	case textResult != nil:
		result = textResult
		outcome = "text_layer"
	case ocrResult != nil:
		result = ocrResult
		outcome = "ocr"
	default:
		s.metrics.Extractions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: could not extract data from document", ErrExtraction)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, filename, result)
	}
	s.metrics.Extractions.WithLabelValues(outcome).Inc()
	return result, nil
}

func (s *Service) extractFromText(ctx context.Context, text string) (*Result, error) {
	user := fmt.Sprintf(`Extract procurement information from this vendor offer document.

Commodity Groups:
%s

Document text:
%s

Return only valid JSON.`, s.catalog.PromptList(), text)

	raw, err := s.chat.Complete(ctx, extractionSystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	var r Result
	if err := json.Unmarshal([]byte(ai.StripJSON(raw)), &r); err != nil {
		return nil, fmt.Errorf("%w: unparsable model response: %v", ErrExtraction, err)
	}
	return &r, nil
}
