package search

// unattendedMatch is the cheap, noisy similarity used on every viable item
// every iteration. Each dimension on which the template is nonzero is
// sampled with probability PRelevantSampling (relevant) or
// PIrrelevantSampling (irrelevant); sampled dimensions score +1 on exact
// agreement and -1 otherwise.
//
// The sampling set (template-nonzero dimensions) and the normalizer (count
// of relevant dimensions) are intentionally different populations; the
// asymmetry is part of the model.
func (t *Trial) unattendedMatch(it *Item) float64 {
	match := 0.0
	for i, f := range t.template.Features {
		if f == 0 {
			continue
		}
		p := t.Params.PIrrelevantSampling
		if t.relevant[i] {
			p = t.Params.PRelevantSampling
		}
		if t.rng.Float64() < p {
			if it.Features[i] == f {
				match++
			} else {
				match--
			}
		}
	}
	if t.relevantCount != 0 {
		match /= float64(t.relevantCount)
	}
	return match
}

// attendedSimilarity is the deterministic comparison used under focused
// attention: relevance-weighted cosine between item and template, rescaled
// so cosines at or below CosineThreshold come out non-positive and a perfect
// match comes out exactly 1.0.
func (t *Trial) attendedSimilarity(it *Item) float64 {
	dot := 0.0
	for i, f := range it.Features {
		w := t.Params.IrrelevantWeight
		if t.relevant[i] {
			w = t.Params.RelevantWeight
		}
		dot += f * t.template.Features[i] * w
	}
	cosine := 0.0
	if lenProduct := it.VectorLength * t.template.VectorLength; lenProduct > 0 {
		cosine = dot / lenProduct
	}
	return (cosine - t.Params.CosineThreshold) * t.Params.cosineGain()
}
