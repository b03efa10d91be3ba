package speech

import (
	"context"

	"go.uber.org/zap"

	"github.com/insurebot/backend/pkg/logger"
)

// StubTranscriber returns canned transcripts keyed by filename. It backs
// local development and tests where no speech-to-text service exists;
// unknown filenames fall back to the life insurance sample so the
// pipeline always has something to chew on.
type StubTranscriber struct{}

func NewStubTranscriber() *StubTranscriber {
	return &StubTranscriber{}
}

func (s *StubTranscriber) Transcribe(_ context.Context, input AudioInput) (string, error) {
	if transcript, ok := cannedTranscripts[input.Filename]; ok {
		return transcript, nil
	}
	return cannedTranscripts["life_insurance_call.mp3"], nil
}

func (s *StubTranscriber) Duration(_ context.Context, input AudioInput) (float64, error) {
	if duration, ok := cannedDurations[input.Filename]; ok {
		return duration, nil
	}
	// Rough estimate for unknown files: 16 kHz 16-bit mono payload.
	return float64(len(input.Data)) / 32000.0, nil
}

// StubRecognizer is the server-side stand-in for a live microphone.
type StubRecognizer struct{}

func (s *StubRecognizer) Listen(_ context.Context) (string, error) {
	return "", ErrNotSupported
}

// LogSynthesizer records spoken responses instead of producing audio.
type LogSynthesizer struct{}

func (s *LogSynthesizer) Speak(_ context.Context, text string, opts SpeakOptions) error {
	logger.Debug("Speaking response",
		zap.Int("length", len(text)),
		zap.Float64("rate", opts.Rate),
		zap.String("voice", opts.VoicePreference),
	)
	return nil
}

var cannedDurations = map[string]float64{
	"life_insurance_call.mp3":   247.0,
	"health_insurance_call.mp3": 318.5,
}

var cannedTranscripts = map[string]string{
	"life_insurance_call.mp3": `
Agent: Good morning! Thank you for calling InsureLife. My name is Priya. How can I help you today?

Customer: Hi, I'm looking for life insurance. I'm 32 years old and recently got married.

Agent: Congratulations on your marriage! That's a great time to consider life insurance. Can you tell me about your current financial situation and any dependents?

Customer: Thank you. My wife is working too, but we're planning to have children in the next few years. I earn about 8 lakhs per year.

Agent: Perfect. For someone in your situation, I'd recommend term life insurance. Given your income of 8 lakhs, you should consider coverage of 80 lakhs to 1 crore. This would ensure your family's financial security.

Customer: That sounds like a lot. What would be the premium for such coverage?

Agent: For a 32-year-old healthy male, a 1 crore term plan would cost approximately 12,000 to 15,000 per year. That's just about 1,000 to 1,250 per month - less than what many people spend on dining out.

Customer: That's actually quite reasonable. What about medical tests?

Agent: For coverage up to 50 lakhs, usually no medical tests are required if you're under 35 and have no pre-existing conditions. For higher amounts, we might need basic tests like blood work and ECG.

Customer: Okay, and how long does the process take?

Agent: Once you submit your application with all documents, it typically takes 7-15 days for approval. We can start the process today if you'd like.

Customer: Yes, I'd like to proceed. What documents do I need?
`,
	"health_insurance_call.mp3": `
Agent: Hello, this is Rajesh from HealthFirst Insurance. How may I assist you today?

Customer: Hi, I want to buy health insurance for my family. We are four members - me, my wife, and two children.

Agent: That's wonderful that you're thinking about your family's health security. Can you tell me the ages of all family members?

Customer: I'm 35, my wife is 32, and our children are 8 and 5 years old.

Agent: Perfect. For a family of four with your age profile, I'd recommend our Family Health Plan with a sum insured of 5 to 10 lakhs.

Customer: What's the difference between individual and family floater plans?

Agent: Great question! In a family floater, the entire sum insured can be used by any family member. So if you have 10 lakhs coverage, any one person can use the full amount if needed. Individual plans give separate coverage to each person.

Customer: Which is better?

Agent: For families like yours, floater plans are usually more cost-effective and provide better coverage flexibility. The premium for a 10 lakh family floater would be around 18,000 to 25,000 per year.

Customer: What about pre-existing diseases? My wife has diabetes.

Agent: Pre-existing conditions are covered after a waiting period, typically 2-4 years depending on the condition. Diabetes is commonly covered. We'll need her medical reports for accurate assessment.

Customer: Are there any other benefits?

Agent: Yes! Our plan includes free annual health check-ups, cashless treatment at 8,000+ hospitals, ambulance coverage, and even teleconsultation services.
`,
}
