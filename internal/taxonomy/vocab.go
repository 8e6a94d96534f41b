package taxonomy

// The three scoring vocabularies of the comprehensive inkblot system. These
// are fixed by the scoring method, not by configuration.
var (
	Determinants  = New("determinants", determinantNodes)
	Contents      = New("content", contentNodes)
	SpecialScores = New("special_scores", specialScoreNodes)
)

var determinantNodes = []Node{
	{Code: "F", Label: "F - Form"},
	{Code: "Movement", Label: "Movement Response", Children: []Node{
		{Code: "M", Label: "M - Human Movement"},
		{Code: "FM", Label: "FM - Animal Movement"},
		{Code: "m", Label: "m - Inanimate Movement"},
	}},
	{Code: "Chromatic", Label: "Chromatic Colors", Children: []Node{
		{Code: "C", Label: "C - Pure Colors"},
		{Code: "CF", Label: "CF - Color Form"},
		{Code: "FC", Label: "FC - Form Color"},
		{Code: "Cn", Label: "Cn - Color Naming"},
	}},
	{Code: "Achromatic", Label: "Achromatic Color (C)", Children: []Node{
		{Code: "C'", Label: "C' - Pure Achromatic Color"},
		{Code: "C'F", Label: "C'F - Achromatic Color Form"},
		{Code: "FC'", Label: "FC' - Form Achromatic Color"},
	}},
	{Code: "ShadingTexture", Label: "Shading Texture", Children: []Node{
		{Code: "LT", Label: "LT - Pure Texture"},
		{Code: "TF", Label: "TF - Texture Form"},
		{Code: "FT", Label: "FT - Form Texture"},
	}},
	{Code: "ShadingVista", Label: "Shading Dimensions / Vista (V)", Children: []Node{
		{Code: "V", Label: "V - Pure Vista"},
		{Code: "VF", Label: "VF - Vista Form"},
		{Code: "FV", Label: "FV - Form Vista"},
	}},
	{Code: "ShadingDiffuse", Label: "Shading Diffuse (Y)", Children: []Node{
		{Code: "Y", Label: "Y - Pure Diffuse"},
		{Code: "YF", Label: "YF - Shading Form"},
		{Code: "FY", Label: "FY - Form Shading"},
	}},
	{Code: "FD", Label: "FD - Form Dimension"},
	{Code: "PairsReflections", Label: "Pairs and Reflections", Children: []Node{
		{Code: "Pair", Label: "Pair Response"},
		{Code: "rF", Label: "rF - Reflection Form"},
		{Code: "Fr", Label: "Fr - Form Reflection"},
	}},
}

var contentNodes = []Node{
	{Code: "H", Label: "H - Whole Human"},
	{Code: "Hf", Label: "H - Whole Human Fictional/Mythological"},
	{Code: "Hd", Label: "Hd - Human Details"},
	{Code: "Hdf", Label: "Hd - Human Details Fictional/Mythological"},
	{Code: "Hx", Label: "Hx - Human Experience"},
	{Code: "A", Label: "A - Whole Animal"},
	{Code: "Af", Label: "A - Whole Animal Fictional/Mythological"},
	{Code: "Ad", Label: "Ad - Animal Details"},
	{Code: "Adf", Label: "Ad - Animal Details Fictional/Mythological"},
	{Code: "An", Label: "An - Anatomy"},
	{Code: "Art", Label: "Art - Art"},
	{Code: "Ay", Label: "Ay - Anthropology"},
	{Code: "Bl", Label: "Bl - Blood"},
	{Code: "Bt", Label: "Bt - Botany"},
	{Code: "Cg", Label: "Cg - Clothing"},
	{Code: "Cl", Label: "Cl - Clouds"},
	{Code: "Ex", Label: "Ex - Explosion"},
	{Code: "Fi", Label: "Fi - Fire"},
	{Code: "Fd", Label: "Fd - Food"},
	{Code: "Ge", Label: "Ge - Geography"},
	{Code: "Hh", Label: "Hh - Household"},
	{Code: "Ls", Label: "Ls - Landscape"},
	{Code: "Na", Label: "Na - Nature"},
	{Code: "Sc", Label: "Sc - Science"},
	{Code: "Sx", Label: "Sx - Sex"},
	{Code: "Xy", Label: "Xy - X-ray"},
}

var specialScoreNodes = []Node{
	{Code: "UnusualVerbalization", Label: "Unusual Verbalization", Children: []Node{
		{Code: "DV", Label: "DV - Deviant Verbalization", Children: []Node{
			{Code: "DV1", Label: "DV"},
			{Code: "DR", Label: "DR"},
		}},
		{Code: "IC", Label: "IC - Incompatible", Children: []Node{
			{Code: "INCOM", Label: "INCOM"},
			{Code: "FABCOM", Label: "FABCOM"},
			{Code: "CONTAM", Label: "CONTAM"},
		}},
		{Code: "IL", Label: "IL - Illogical", Children: []Node{
			{Code: "ALOG", Label: "ALOG"},
		}},
	}},
	{Code: "Perseveration", Label: "Perseveration", Children: []Node{
		{Code: "PSV1", Label: "Within Card Perseveration"},
		{Code: "PSV2", Label: "Content Perseveration"},
		{Code: "PSV3", Label: "Mechanical Perseveration"},
	}},
	{Code: "SpecialContent", Label: "Special Content Characteristic", Children: []Node{
		{Code: "AB", Label: "AB - Abstract Content"},
		{Code: "AG", Label: "AG - Aggressive Movement"},
		{Code: "COP", Label: "COP - Cooperative Movement"},
		{Code: "MOR", Label: "MOR - Morbid Content"},
	}},
	{Code: "HumanRepresentation", Label: "Human Representation Responses", Children: []Node{
		{Code: "GHR", Label: "GHR - Good Human Representation"},
		{Code: "PHR", Label: "PHR - Poor Human Representation"},
	}},
	{Code: "PER", Label: "PER - Personalized Responses"},
	{Code: "SpecialColor", Label: "Special Color Phenomenon", Children: []Node{
		{Code: "CP", Label: "Color Projection"},
	}},
}
