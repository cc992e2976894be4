package analysis

// DemoContract is the canned document served by demo mode so the flow can
// be exercised without uploading anything.
const DemoContract = `SERVICE AGREEMENT

This Service Agreement is entered into on January 15, 2025, between Acme Consulting LLC and Brightline Retail Inc, defined collectively as the "Parties".

1. Services. The Provider shall deliver monthly market analysis reports to the Client. The Client must supply all required sales data within 5 business days of each month end.

2. Fees. The Client agree to pay $2,500.00 per month, due within 30 days of invoice. A late payment fee of $150 applies thereafter.

3. Term and Renewal. This Agreement runs for twelve months and is subject to automatic renewal for successive one-year terms unless either party gives written notice at least 60 days before expiry.

4. Termination. The Provider may effect termination without cause upon 30 days written notice. Either party may terminate immediately upon material breach.

5. Confidentiality. Each party shall keep all confidential information strictly private and agrees that this confidentiality obligation survives termination.

6. Liability. The Client shall indemnify the Provider against all third-party claims. Liability for indirect damages is excluded; a penalty of 10% applies to late deliverables.

7. Disputes. Any dispute shall be settled by binding arbitration under the exclusive jurisdiction of the courts of New York, whose governing law applies.`
