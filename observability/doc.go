// Package observability wires OpenTelemetry tracing and metrics for the
// speech-to-text client and the webhook receiver.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
// Every transcription call runs inside a span named stt.speech_to_text
// carrying stt.model_id, stt.request_id and http.status_code.
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &meterCfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("stt"))
//	client, err := stt.New(key, stt.WithMetrics(metrics))
//
// Health:
//
//	health := observability.CheckAll(ctx, "stt-webhook", version, client)
package observability
