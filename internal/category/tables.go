package category

// boothToCategory maps booth id prefixes to category names. The second
// block covers codes used in older fair years.
var boothToCategory = map[string]string{
	"ANIM": "Animal Sciences",
	"BEHA": "Behavioral & Social Sciences",
	"BICM": "Biomedical & Health Sciences",
	"BITS": "Biochemistry",
	"CBIO": "Computational Biology & Bioinformatics",
	"CELL": "Cellular & Molecular Biology",
	"CHEM": "Chemistry",
	"COMP": "Computational Science",
	"EAEV": "Earth & Environmental Sciences",
	"ENEV": "Environmental Engineering",
	"ENER": "Energy: Sustainable Materials & Design",
	"ENSI": "Engineering Technology: Statics & Dynamics",
	"ENBM": "Biomedical Engineering",
	"ENMC": "Engineering: Materials & Chemical",
	"ENMT": "Engineering: Mechanical",
	"EBED": "Embedded Systems",
	"MATH": "Mathematics",
	"MCRO": "Microbiology",
	"PHYS": "Physics",
	"ROBT": "Robotics & Intelligent Machines",
	"SOFT": "Software Systems",
	"PLNT": "Plant Sciences",

	"MEHE": "Biomedical & Health Sciences",
	"MEDH": "Biomedical & Health Sciences",
	"ENSC": "Earth & Environmental Sciences",
	"CSE":  "Software Systems",
	"CS":   "Software Systems",
	"EEM":  "Engineering: Mechanical",
	"ENGR": "Engineering: Mechanical",
	"PHYA": "Physics",
	"ENTE": "Energy: Sustainable Materials & Design",
	"ET":   "Energy: Sustainable Materials & Design",
	"BOT":  "Plant Sciences",
	"ZOOL": "Animal Sciences",
	"BSS":  "Behavioral & Social Sciences",
	"EAPS": "Earth & Environmental Sciences",
	"ENMA": "Environmental Engineering",
}

// categoryAliases normalizes category names that appear on older
// abstract pages to the current names
var categoryAliases = map[string]string{
	"Biomedical and Health Sciences":           "Biomedical & Health Sciences",
	"Robotics and Intelligent Machines":        "Robotics & Intelligent Machines",
	"Computational Biology and Bioinformatics": "Computational Biology & Bioinformatics",
	"Energy: Sustainable Materials and Design": "Energy: Sustainable Materials & Design",
	"Materials Science":                        "Engineering: Materials & Chemical",
	"Translational Medical Science":            "Biomedical & Health Sciences",
	"Systems Software":                         "Software Systems",
	"Energy: Chemical":                         "Energy: Sustainable Materials & Design",
	"Energy: Physical":                         "Energy: Sustainable Materials & Design",
	"Physics and Astronomy":                    "Physics",
	"Earth and Environmental Sciences":         "Earth & Environmental Sciences",
	"Cellular and Molecular Biology":           "Cellular & Molecular Biology",
	"Engineering Mechanics":                    "Engineering: Mechanical",
	"Technology Enhances the Arts":             "Software Systems",
}

// categoryKeywords drives cross-listing detection. Matching is plain
// substring containment over the lowercased title and abstract.
var categoryKeywords = map[string][]string{
	"Animal Sciences": {
		"animal", "mammal", "bird", "fish", "insect", "reptile", "amphibian",
		"veterinary", "livestock", "wildlife", "zoo", "pet", "canine", "feline",
		"rodent", "mouse", "rat", "monkey", "primate", "behavior", "ecology",
		"predator", "prey", "migration", "habitat", "species", "population",
	},
	"Behavioral & Social Sciences": {
		"psychology", "behavior", "cognitive", "social", "memory", "learning",
		"perception", "emotion", "stress", "anxiety", "depression", "mental health",
		"survey", "questionnaire", "interview", "demographic", "economic",
		"education", "decision", "bias", "attitude", "personality", "motivation",
	},
	"Biomedical & Health Sciences": {
		"disease", "patient", "clinical", "diagnosis", "treatment", "therapy",
		"medical", "health", "hospital", "symptom", "drug", "pharmaceutical",
		"pathology", "epidemiology", "public health", "nutrition", "diet",
		"obesity", "diabetes", "cardiovascular", "hypertension", "inflammation",
	},
	"Biochemistry": {
		"enzyme", "protein", "amino acid", "metabolism", "biochemical",
		"molecular weight", "purification", "assay", "kinetics", "substrate",
		"inhibitor", "catalyst", "reaction", "pathway", "synthesis", "degradation",
		"lipid", "carbohydrate", "nucleotide", "cofactor", "vitamin",
	},
	"Computational Biology & Bioinformatics": {
		"bioinformatics", "genomics", "proteomics", "sequence", "alignment",
		"phylogenetic", "gene expression", "microarray", "rna-seq", "chip-seq",
		"database", "pipeline", "algorithm", "prediction", "modeling",
		"network", "systems biology", "omics", "annotation", "variant",
	},
	"Cellular & Molecular Biology": {
		"cell", "cellular", "molecular", "gene", "dna", "rna", "protein",
		"expression", "transcription", "translation", "mutation", "genome",
		"chromosome", "nucleus", "mitochondria", "membrane", "receptor",
		"signaling", "apoptosis", "proliferation", "differentiation", "stem cell",
	},
	"Chemistry": {
		"chemical", "reaction", "synthesis", "compound", "molecule", "element",
		"acid", "base", "ph", "solution", "concentration", "titration",
		"spectroscopy", "chromatography", "organic", "inorganic", "analytical",
		"polymer", "catalyst", "oxidation", "reduction", "bonding",
	},
	"Computational Science": {
		"algorithm", "simulation", "model", "computer", "software", "code",
		"programming", "data", "analysis", "machine learning", "artificial intelligence",
		"neural network", "deep learning", "optimization", "parallel", "gpu",
		"numerical", "computational", "visualization", "big data",
	},
	"Earth & Environmental Sciences": {
		"environment", "ecology", "ecosystem", "climate", "weather", "atmosphere",
		"ocean", "marine", "aquatic", "water", "soil", "geology", "mineral",
		"earthquake", "volcano", "fossil", "biodiversity", "conservation",
		"pollution", "contamination", "sustainability", "carbon", "greenhouse",
	},
	"Environmental Engineering": {
		"water treatment", "wastewater", "filtration", "purification", "remediation",
		"pollution control", "air quality", "emissions", "waste management",
		"recycling", "sustainable", "renewable", "green", "environmental",
		"bioremediation", "phytoremediation", "desalination", "sewage",
	},
	"Energy: Sustainable Materials & Design": {
		"energy", "solar", "wind", "renewable", "battery", "fuel cell",
		"photovoltaic", "turbine", "power", "electricity", "efficiency",
		"storage", "biofuel", "hydrogen", "sustainable", "green energy",
		"thermal", "heat", "insulation", "led", "lighting",
	},
	"Engineering Technology: Statics & Dynamics": {
		"structure", "bridge", "building", "load", "stress", "strain",
		"force", "tension", "compression", "beam", "truss", "foundation",
		"stability", "vibration", "dynamics", "mechanics", "construction",
		"civil engineering", "architectural", "design",
	},
	"Biomedical Engineering": {
		"prosthetic", "implant", "medical device", "biomaterial", "tissue engineering",
		"rehabilitation", "assistive", "diagnostic device", "biosensor", "imaging",
		"mri", "ultrasound", "ecg", "eeg", "bionic", "orthopedic", "surgical",
		"wearable", "health monitor", "drug delivery",
	},
	"Engineering: Materials & Chemical": {
		"material", "nanoparticle", "nanomaterial", "composite", "polymer",
		"ceramic", "metal", "alloy", "coating", "surface", "corrosion",
		"strength", "durability", "thermal", "electrical", "optical",
		"characterization", "synthesis", "fabrication", "processing",
	},
	"Engineering: Mechanical": {
		"mechanical", "machine", "robot", "motor", "gear", "pump", "valve",
		"actuator", "mechanism", "automation", "cad", "3d print", "manufacturing",
		"design", "prototype", "testing", "aerodynamic", "fluid", "thermal",
		"vehicle", "drone", "aircraft",
	},
	"Embedded Systems": {
		"embedded", "microcontroller", "arduino", "raspberry pi", "sensor",
		"iot", "internet of things", "wireless", "bluetooth", "wifi",
		"real-time", "firmware", "hardware", "circuit", "pcb", "gpio",
		"actuator", "control system", "monitoring", "automation",
	},
	"Mathematics": {
		"mathematical", "equation", "theorem", "proof", "algorithm", "optimization",
		"statistics", "probability", "regression", "correlation", "analysis",
		"graph theory", "number theory", "geometry", "topology", "algebra",
		"calculus", "differential", "integral", "matrix", "vector",
	},
	"Microbiology": {
		"bacteria", "virus", "fungus", "yeast", "microbe", "microbial",
		"antibiotic", "antimicrobial", "infection", "pathogen", "culture",
		"colony", "growth", "fermentation", "biofilm", "probiotic",
		"gut microbiome", "e. coli", "salmonella", "staphylococcus",
	},
	"Physics": {
		"physics", "quantum", "particle", "wave", "frequency", "wavelength",
		"electromagnetic", "magnetic", "electric", "voltage", "current",
		"resistance", "capacitor", "inductor", "optics", "lens", "laser",
		"radiation", "nuclear", "thermodynamics", "entropy", "momentum",
	},
	"Robotics & Intelligent Machines": {
		"robot", "robotic", "autonomous", "navigation", "path planning",
		"computer vision", "object detection", "tracking", "lidar", "slam",
		"manipulator", "gripper", "locomotion", "humanoid", "swarm",
		"artificial intelligence", "machine learning", "control",
	},
	"Software Systems": {
		"software", "app", "application", "website", "web", "mobile",
		"database", "api", "framework", "programming", "code", "algorithm",
		"user interface", "ux", "cloud", "security", "encryption",
		"network", "server", "client", "browser", "operating system",
	},
	"Plant Sciences": {
		"plant", "seed", "germination", "growth", "root", "stem", "leaf",
		"flower", "fruit", "photosynthesis", "chlorophyll", "fertilizer",
		"soil", "irrigation", "agriculture", "crop", "harvest", "yield",
		"hydroponics", "aquaponics", "greenhouse", "botanical",
	},
}

// strongKeywords are distinctive enough that one hit cross-lists the
// category on its own
var strongKeywords = map[string][]string{
	"Plant Sciences":                  {"photosynthesis", "germination", "chlorophyll", "hydroponics"},
	"Microbiology":                    {"bacteria", "virus", "antibiotic", "pathogen", "biofilm"},
	"Robotics & Intelligent Machines": {"robot", "robotic", "autonomous navigation"},
	"Embedded Systems":                {"arduino", "raspberry pi", "microcontroller", "iot"},
	"Biomedical Engineering":          {"prosthetic", "implant", "medical device", "biosensor"},
	"Environmental Engineering":       {"wastewater", "water treatment", "bioremediation"},
}
