// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package affiliation

// academicTerms mark universities, hospitals, public research bodies and
// their subunits. Any hit classifies the affiliation as academic.
var academicTerms = []string{
	"university",
	"universit",
	"universidad",
	"college",
	"school of",
	"school",
	"faculty",
	"academy",
	"hospital",
	"medical center",
	"medical centre",
	"health system",
	"institute",
	"institut",
	"laboratory",
	"laboratories for",
	"department",
	"dept",
	"centre for",
	"center for",
	"research council",
	"ministry of",
	"national institutes",
	"public health",
	"inserm",
	"cnrs",
}

// knownCompanies lists pharmaceutical and biotech companies by name.
var knownCompanies = []string{
	"pfizer",
	"moderna",
	"roche",
	"genentech",
	"novartis",
	"merck",
	"msd",
	"johnson & johnson",
	"janssen",
	"astrazeneca",
	"glaxosmithkline",
	"gsk",
	"sanofi",
	"bayer",
	"abbvie",
	"amgen",
	"gilead",
	"biogen",
	"regeneron",
	"eli lilly",
	"bristol-myers squibb",
	"bristol myers squibb",
	"boehringer ingelheim",
	"takeda",
	"novo nordisk",
	"vertex pharmaceuticals",
	"biontech",
	"illumina",
	"thermo fisher",
	"medtronic",
	"teva",
	"daiichi sankyo",
	"astellas",
	"eisai",
	"otsuka",
	"ipsen",
	"lundbeck",
	"ucb",
	"servier",
	"grifols",
	"csl behring",
	"alnylam",
	"incyte",
	"seagen",
	"compass pathways",
	"mindmed",
	"atai life sciences",
}

// legalSuffixes are corporate legal-entity designators. They are matched
// as bare fragments anywhere in the text, so short ones such as "co" and
// "ag" also fire inside unrelated words.
var legalSuffixes = []string{
	"inc",
	"ltd",
	"llc",
	"l.l.c.",
	"gmbh",
	"corp",
	"plc",
	"limited",
	"s.a.",
	"s.p.a.",
	"b.v.",
	"n.v.",
	"k.k.",
	"pvt",
	"pty",
	"ag",
	"co",
}

// industryKeywords hint at a commercial life-sciences organization.
var industryKeywords = []string{
	"pharma",
	"biotech",
	"biopharma",
	"therapeutics",
	"biosciences",
	"bioscience",
	"biologics",
	"diagnostics",
	"genomics",
	"biotherapeutics",
	"life sciences",
	"medical devices",
	"consulting",
	"r&d center",
	"company",
}
