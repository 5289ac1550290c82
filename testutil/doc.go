// Package testutil holds shared test infrastructure: lifecycle helpers for
// components and a fake speech-to-text endpoint that records what it
// receives.
//
// Starting a component for the duration of a test:
//
//	c := database.NewComponent(cfg, logger.NewNop())
//	testutil.Start(t, c)
//	testutil.ExpectHealth(t, c, observability.HealthStatusUp)
//
// Serving canned transcripts:
//
//	api := testutil.NewFakeAPI(t, http.StatusOK, testutil.DiarizedTranscript)
//	client, _ := stt.NewWithBaseURL("key", api.URL)
//	...
//	sent := api.Last(t)
//	_ = sent.Fields["model_id"]
package testutil
